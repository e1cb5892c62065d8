package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

type NoticeRow struct {
	ID            string  `json:"id"`
	WorkspaceID   string  `json:"workspace_id"`
	UserID        string  `json:"user_id"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Reason        string  `json:"reason"`
	Reviewed      bool    `json:"reviewed"`
	Approved      bool    `json:"approved"`
	ReviewComment *string `json:"review_comment"`
	CreatedAt     string  `json:"created_at"`
}

type NoticeEnvelope struct {
	Success bool      `json:"success"`
	Notice  NoticeRow `json:"notice"`
}

type NoticeListEnvelope struct {
	Success bool        `json:"success"`
	Notices []NoticeRow `json:"notices"`
}

var (
	reviewComment string
)

var noticeCmd = &cobra.Command{
	Use:   "notice",
	Short: "Inactivity notice commands",
}

var noticeSubmitCmd = &cobra.Command{
	Use:   "submit <workspace-id> <start> <end> <reason>",
	Short: "Submit an inactivity notice (dates as YYYY-MM-DD)",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		start, end := parseDateArg(args[1]), parseDateArg(args[2])
		client := NewClient(apiURL, actorID)

		var resp NoticeEnvelope
		req := map[string]interface{}{
			"startTime": start,
			"endTime":   end,
			"reason":    args[3],
		}
		if err := client.Post("/v1/workspaces/"+args[0]+"/notices", req, &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Notice submitted.\n")
		fmt.Printf("Notice ID: %s\n", resp.Notice.ID)
	},
}

var noticeRecordCmd = &cobra.Command{
	Use:   "record <workspace-id> <user-id> <start> <end> <reason>",
	Short: "Record an already-approved notice on a member's behalf",
	Args:  cobra.ExactArgs(5),
	Run: func(cmd *cobra.Command, args []string) {
		userID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid user id %q\n", args[1])
			os.Exit(1)
		}
		start, end := parseDateArg(args[2]), parseDateArg(args[3])
		client := NewClient(apiURL, actorID)

		var resp NoticeEnvelope
		req := map[string]interface{}{
			"userId":    userID,
			"startTime": start,
			"endTime":   end,
			"reason":    args[4],
		}
		if err := client.Post("/v1/workspaces/"+args[0]+"/notices/record", req, &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Notice recorded as approved.\n")
		fmt.Printf("Notice ID: %s\n", resp.Notice.ID)
	},
}

var noticeReviewCmd = &cobra.Command{
	Use:   "review <workspace-id> <notice-id> <approve|deny|cancel>",
	Short: "Approve, deny, or cancel a notice",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewClient(apiURL, actorID)

		req := map[string]interface{}{
			"id":     args[1],
			"status": args[2],
		}
		if reviewComment != "" {
			req["reviewComment"] = reviewComment
		}
		if err := client.Post("/v1/workspaces/"+args[0]+"/notices/review", req, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Notice %s: %s applied.\n", args[1], args[2])
	},
}

var noticeListCmd = &cobra.Command{
	Use:   "list <workspace-id>",
	Short: "List a workspace's notices",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewClient(apiURL, actorID)

		var resp NoticeListEnvelope
		if err := client.Get("/v1/workspaces/"+args[0]+"/notices", &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printResult(resp.Notices)
	},
}

func parseDateArg(s string) int64 {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid date %q, want YYYY-MM-DD\n", s)
		os.Exit(1)
	}
	return t.UnixMilli()
}

func init() {
	noticeReviewCmd.Flags().StringVarP(&reviewComment, "comment", "c", "", "Review comment")
	noticeCmd.AddCommand(noticeSubmitCmd, noticeRecordCmd, noticeReviewCmd, noticeListCmd)
	rootCmd.AddCommand(noticeCmd)
}
