package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/studylist/studylist-sync/client"
	"github.com/studylist/studylist-sync/internal/classify"
	"github.com/studylist/studylist-sync/internal/model"
)

func init() {
	var topicFlag, typeFlag, titleFlag, urlFlag string
	var ratingFlag float64

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Save a material under a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			if topicFlag == "" || titleFlag == "" {
				return fmt.Errorf("--topic and --title required")
			}
			in := client.MaterialInput{
				Type:   model.MaterialType(typeFlag),
				Title:  titleFlag,
				URL:    urlFlag,
				Rating: ratingFlag,
			}
			return addMaterial(cmd, topicFlag, in)
		},
	}
	saveCmd.Flags().StringVarP(&topicFlag, "topic", "t", "", "Topic name or id (required)")
	saveCmd.Flags().StringVar(&typeFlag, "type", "webpage", "Material type: webpage, video, book or podcast")
	saveCmd.Flags().StringVar(&titleFlag, "title", "", "Material title (required)")
	saveCmd.Flags().StringVar(&urlFlag, "url", "", "Material URL")
	saveCmd.Flags().Float64Var(&ratingFlag, "rating", 0, "Rating, defaults server side when omitted")
	rootCmd.AddCommand(saveCmd)

	var clipTopic string
	clipCmd := &cobra.Command{
		Use:   "clip URL",
		Short: "Fetch a page, classify it and save it under a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawURL := args[0]
			info, err := classifyURL(rawURL)
			if err != nil {
				return err
			}

			topic := clipTopic
			if topic == "" {
				m, err := openMirror()
				if err != nil {
					return err
				}
				topic, err = m.SelectedTopic()
				_ = m.Close()
				if err != nil {
					return err
				}
				if topic == "" {
					topic = model.DefaultTopicName
				}
			}

			title := info.Title
			if title == "" {
				title = rawURL
			}
			in := client.MaterialInput{Type: info.Type, Title: title, URL: rawURL}
			return addMaterial(cmd, topic, in)
		},
	}
	clipCmd.Flags().StringVarP(&clipTopic, "topic", "t", "", "Topic name or id (defaults to the selected topic)")
	rootCmd.AddCommand(clipCmd)
}

func addMaterial(cmd *cobra.Command, topic string, in client.MaterialInput) error {
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

	topics, err := sdk.AddMaterial(cmd.Context(), uid, topic, in)
	if err != nil {
		return err
	}
	printTopics(topics)
	return nil
}

// classifyURL downloads the page and derives type and title. Download
// failures degrade to a host-only classification.
func classifyURL(rawURL string) (classify.PageInfo, error) {
	httpc := &http.Client{Timeout: 15 * time.Second}
	resp, err := httpc.Get(rawURL)
	if err != nil {
		return classify.Classify(rawURL, nil), nil
	}
	defer func() { _ = resp.Body.Close() }()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return classify.Classify(rawURL, nil), nil
	}
	return classify.Classify(rawURL, doc), nil
}
