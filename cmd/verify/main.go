package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"symptom-predictor/internal/apiclient"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Send one sample prediction request to the JSON API",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			verify(cmd.Context(), cmd, apiclient.New(url))
		},
	}
	cmd.Flags().StringVar(&url, "url", apiclient.DefaultURL, "prediction API endpoint")
	return cmd
}

func verify(ctx context.Context, cmd *cobra.Command, client *apiclient.Client) {
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	res, err := client.Predict(ctx, apiclient.SampleSymptoms)
	if err != nil {
		fmt.Fprintf(out, "An error occurred during verification: %v\n", err)
		return
	}
	if res.StatusCode == 200 {
		fmt.Fprintln(out, "API Verification Successful!")
		fmt.Fprintln(out, "Response:", res.Body)
		return
	}
	fmt.Fprintf(out, "API Verification Failed with status code: %d\n", res.StatusCode)
	fmt.Fprintln(out, "Response:", res.Body)
}
