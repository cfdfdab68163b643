package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ricrios/hero-arcade/internal/storage"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect the games' local storage",
	Long: `Games keep their high scores, the SLAP leaderboard and wall posts as
JSON values in a key/value table. These commands read and edit it.

Examples:
  hero storage keys
  hero storage get snake-high-score
  hero storage rm slap_drafts_v1`,
}

var storageKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List stored keys",
	Args:  cobra.NoArgs,
	RunE: withStore(func(s *storage.Store, _ []string) error {
		keys, err := s.Keys()
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return nil
	}),
}

var storageGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(s *storage.Store, args []string) error {
		v, ok, err := s.GetItem(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no value for %q", args[0])
		}
		fmt.Println(v)
		return nil
	}),
}

var storageRmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Remove a stored value",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(s *storage.Store, args []string) error {
		return s.RemoveItem(args[0])
	}),
}

func init() {
	storageCmd.AddCommand(storageKeysCmd, storageGetCmd, storageRmCmd)
	rootCmd.AddCommand(storageCmd)
}

func withStore(fn func(s *storage.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()
		return fn(store, args)
	}
}
