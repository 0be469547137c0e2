package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/stats"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Read, write and moderate reviews",
}

var reviewsStatus string

var reviewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reviews for moderation (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := a.reviews.Load(cmd.Context(), reviewsStatus)
		if printErr := emit(cmd.OutOrStdout(), view, func() error {
			out := cmd.OutOrStdout()
			s := view.Summary
			fmt.Fprintf(out, "total %d  pending %d  published %d  average %.1f\n\n", s.Total, s.Pending, s.Published, s.AverageRating)
			rows := make([][]string, 0, len(view.Reviews))
			for _, r := range view.Reviews {
				rows = append(rows, []string{r.ID, r.ToolID, strconv.Itoa(r.Rating), r.Title, stats.FormatDate(r.CreatedAt), string(r.State)})
			}
			return table(out, []string{"ID", "TOOL", "RATING", "TITLE", "DATE", "STATE"}, rows)
		}); printErr != nil {
			return printErr
		}
		return err
	},
}

var toolReviewFilter apiclient.ToolReviewFilter

var reviewsToolCmd = &cobra.Command{
	Use:   "tool <id>",
	Short: "List the published reviews of a tool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := apiclient.Unwrap(a.client.ToolReviews(cmd.Context(), args[0], toolReviewFilter))
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), page, func() error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rating %.1f from %d reviews\n", page.Rating.Rating, page.Rating.Count)
			printReviews(out, page.Reviews)
			return nil
		})
	},
}

func printReviews(out io.Writer, reviews []domain.Review) {
	for _, r := range reviews {
		fmt.Fprintf(out, "\n%d/5 %s (%s)\n  %s\n", r.Rating, r.Title, stats.FormatDate(r.CreatedAt), r.Comment)
		if len(r.Pros) > 0 {
			fmt.Fprintf(out, "  + %s\n", strings.Join(r.Pros, ", "))
		}
		if len(r.Cons) > 0 {
			fmt.Fprintf(out, "  - %s\n", strings.Join(r.Cons, ", "))
		}
		if r.Response != nil {
			fmt.Fprintf(out, "  > %s\n", r.Response.Text)
		}
	}
}

var reviewDraft struct {
	order, title, comment string
	rating                int
	pros, cons            []string
	recommend             bool
}

var reviewsCreateCmd = &cobra.Command{
	Use:   "create <toolId>",
	Short: "Review a tool you rented",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if reviewDraft.rating < 1 || reviewDraft.rating > 5 {
			return fmt.Errorf("rating must be between 1 and 5, got %d", reviewDraft.rating)
		}
		req := domain.CreateReviewRequest{
			ToolID:  args[0],
			OrderID: reviewDraft.order,
			Rating:  reviewDraft.rating,
			Title:   reviewDraft.title,
			Comment: reviewDraft.comment,
			Pros:    reviewDraft.pros,
			Cons:    reviewDraft.cons,
		}
		if cmd.Flags().Changed("recommend") {
			req.WouldRecommend = &reviewDraft.recommend
		}
		review, err := a.product.Review(cmd.Context(), req)
		if err != nil {
			return reported(err)
		}
		return emit(cmd.OutOrStdout(), review, func() error {
			fmt.Fprintln(cmd.OutOrStdout(), review.ID)
			return nil
		})
	},
}

var reviewsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Publish a review (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reported(a.reviews.Approve(cmd.Context(), args[0]))
	},
}

var rejectReason string

var reviewsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a review (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reported(a.reviews.Reject(cmd.Context(), args[0], rejectReason))
	},
}

var reviewsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a review (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reported(a.reviews.Delete(cmd.Context(), args[0]))
	},
}

func init() {
	reviewsListCmd.Flags().StringVar(&reviewsStatus, "status", "", "pending or approved")

	f := reviewsToolCmd.Flags()
	f.IntVar(&toolReviewFilter.Page, "page", 1, "Page number")
	f.IntVar(&toolReviewFilter.Limit, "limit", 10, "Reviews per page")
	f.StringVar(&toolReviewFilter.Sort, "sort", "", "createdAt, rating or helpfulVotes")
	f.StringVar(&toolReviewFilter.Order, "order", "", "asc or desc")

	f = reviewsCreateCmd.Flags()
	f.IntVar(&reviewDraft.rating, "rating", 0, "Stars, 1 to 5")
	f.StringVar(&reviewDraft.title, "title", "", "Title")
	f.StringVar(&reviewDraft.comment, "comment", "", "Comment")
	f.StringVar(&reviewDraft.order, "order", "", "Order the rental belonged to")
	f.StringSliceVar(&reviewDraft.pros, "pros", nil, "Pros, comma separated")
	f.StringSliceVar(&reviewDraft.cons, "cons", nil, "Cons, comma separated")
	f.BoolVar(&reviewDraft.recommend, "recommend", false, "Would recommend the tool")
	_ = reviewsCreateCmd.MarkFlagRequired("rating")
	_ = reviewsCreateCmd.MarkFlagRequired("title")

	reviewsRejectCmd.Flags().StringVar(&rejectReason, "reason", "", "Why the review is rejected")

	reviewsCmd.AddCommand(reviewsListCmd, reviewsToolCmd, reviewsCreateCmd, reviewsApproveCmd, reviewsRejectCmd, reviewsDeleteCmd)
}
