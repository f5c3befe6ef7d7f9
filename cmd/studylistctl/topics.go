package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studylist/studylist-sync/internal/model"
)

func init() {
	topicsCmd := &cobra.Command{Use: "topics", Short: "Topic operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List topics with per-bucket material counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMirror()
			if err != nil {
				return err
			}
			sdk, uid, err := newSDK(m)
			if err != nil {
				_ = m.Close()
				return err
			}
			defer func() { _ = sdk.Close() }()

			u, err := sdk.FetchUser(cmd.Context(), uid)
			if err != nil {
				return err
			}
			printTopics(u.Topics)
			return nil
		},
	}
	topicsCmd.AddCommand(listCmd)

	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create an empty topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMirror()
			if err != nil {
				return err
			}
			sdk, uid, err := newSDK(m)
			if err != nil {
				_ = m.Close()
				return err
			}
			defer func() { _ = sdk.Close() }()

			topics, err := sdk.AddTopic(cmd.Context(), uid, args[0])
			if err != nil {
				return err
			}
			printTopics(topics)
			return nil
		},
	}
	topicsCmd.AddCommand(addCmd)

	renameCmd := &cobra.Command{
		Use:   "rename TOPIC_ID NEW_NAME",
		Short: "Rename a topic by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMirror()
			if err != nil {
				return err
			}
			sdk, uid, err := newSDK(m)
			if err != nil {
				_ = m.Close()
				return err
			}
			defer func() { _ = sdk.Close() }()

			topics, err := sdk.RenameTopic(cmd.Context(), uid, args[0], args[1])
			if err != nil {
				return err
			}
			printTopics(topics)
			return nil
		},
	}
	topicsCmd.AddCommand(renameCmd)

	selectCmd := &cobra.Command{
		Use:   "select NAME",
		Short: "Remember the topic later clips default to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMirror()
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()
			return m.SetSelectedTopic(args[0])
		},
	}
	topicsCmd.AddCommand(selectCmd)

	rootCmd.AddCommand(topicsCmd)
}

func printTopics(topics []model.Topic) {
	for _, t := range topics {
		fmt.Fprintf(os.Stdout, "%s  %s  (webpage:%d video:%d book:%d podcast:%d)\n",
			t.ID, t.Name,
			len(t.Categories.Webpage), len(t.Categories.Video),
			len(t.Categories.Book), len(t.Categories.Podcast))
	}
}
