package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Krimson/growth-monitory/internal/grpcserver"
	"github.com/Krimson/growth-monitory/pkg/models"
)

func (a *app) kpspCmd() *cobra.Command {
	var (
		age     float64
		answers string
		remote  string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "kpsp",
		Short: "Score a KPSP developmental screening",
		Long: `Grades the yes answers of the KPSP questionnaire for the child's age band.

Example:
  growthd kpsp --age 12 --answers y,y,y,n,y`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseAnswers(answers)
			if err != nil {
				return err
			}
			req := models.KPSPRequest{Answers: parsed}
			if cmd.Flags().Changed("age") {
				req.AgeMonths = models.Float(age)
			}

			resp, err := a.evaluateKPSP(cmd.Context(), remote, req)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			printKPSP(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&age, "age", 0, "Age in months")
	f.StringVar(&answers, "answers", "", "Comma separated answers, e.g. y,y,n,y,y")
	f.StringVar(&remote, "remote", "", "gRPC address of a running growthd; empty computes locally")
	f.BoolVar(&asJSON, "json", false, "Print the raw JSON response")

	return cmd
}

func (a *app) evaluateKPSP(ctx context.Context, remote string, req models.KPSPRequest) (*models.KPSPResponse, error) {
	if remote == "" {
		svc, err := a.newService(nil)
		if err != nil {
			return nil, err
		}
		return svc.EvaluateKPSP(ctx, req)
	}

	client, err := grpcserver.Dial(remote)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	return client.EvaluateKPSP(ctx, req)
}

// parseAnswers accepts y/n, ya/tidak, yes/no, true/false and 1/0.
func parseAnswers(s string) ([]bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]bool, 0, len(parts))
	for i, p := range parts {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "y", "ya", "yes", "true", "1":
			out = append(out, true)
		case "n", "tidak", "no", "false", "0":
			out = append(out, false)
		default:
			return nil, fmt.Errorf("answer %d: %q is not yes or no", i+1, p)
		}
	}
	return out, nil
}

func printKPSP(w io.Writer, resp *models.KPSPResponse) {
	fmt.Fprintf(w, "Age band:       %d bulan\n", resp.AgeGroup)
	fmt.Fprintf(w, "Score:          %d/%d\n", resp.Score, resp.TotalQuestions)
	fmt.Fprintf(w, "Result:         %s\n", resp.Result)
	fmt.Fprintf(w, "Recommendation: %s\n", resp.Recommendation)
}
