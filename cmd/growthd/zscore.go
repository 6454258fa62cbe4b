package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Krimson/growth-monitory/internal/grpcserver"
	"github.com/Krimson/growth-monitory/pkg/models"
)

const remoteTimeout = 10 * time.Second

type zscoreOptions struct {
	weight, height, head, age float64
	gender, kind              string
	birthDate, measuredDate   string
	remote                    string
	asJSON                    bool
}

func (a *app) zscoreCmd() *cobra.Command {
	opts := &zscoreOptions{}

	cmd := &cobra.Command{
		Use:   "zscore",
		Short: "Calculate a WHO z-score for one measurement",
		Long: `Computes the z-score of one anthropometric index and its Permenkes 2020
classification.

Example:
  growthd zscore --weight 9.5 --age 12 --gender M --type wfa
  growthd zscore --weight 9.5 --height 75 --type wfh --remote localhost:50051`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.CalculateRequest{
				Gender:          opts.gender,
				Type:            opts.kind,
				BirthDate:       opts.birthDate,
				MeasurementDate: opts.measuredDate,
			}
			flags := cmd.Flags()
			if flags.Changed("weight") {
				req.Weight = models.Float(opts.weight)
			}
			if flags.Changed("height") {
				req.Height = models.Float(opts.height)
			}
			if flags.Changed("head") {
				req.HeadCircumference = models.Float(opts.head)
			}
			if flags.Changed("age") {
				req.AgeMonths = models.Float(opts.age)
			}

			resp, err := a.calculate(cmd.Context(), opts.remote, req)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			printZScore(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.weight, "weight", 0, "Weight in kg")
	f.Float64Var(&opts.height, "height", 0, "Length or height in cm")
	f.Float64Var(&opts.head, "head", 0, "Head circumference in cm")
	f.Float64Var(&opts.age, "age", 0, "Age in months")
	f.StringVar(&opts.gender, "gender", "M", "Sex: M or F")
	f.StringVar(&opts.kind, "type", "wfa", "Index: wfa, hfa, wfh, bfa, hcfa")
	f.StringVar(&opts.birthDate, "birth-date", "", "Birth date (YYYY-MM-DD), used when --age is not set")
	f.StringVar(&opts.measuredDate, "measurement-date", "", "Measurement date (YYYY-MM-DD), defaults to today")
	f.StringVar(&opts.remote, "remote", "", "gRPC address of a running growthd; empty computes locally")
	f.BoolVar(&opts.asJSON, "json", false, "Print the raw JSON response")

	return cmd
}

func (a *app) calculate(ctx context.Context, remote string, req models.CalculateRequest) (*models.CalculateResponse, error) {
	if remote == "" {
		svc, err := a.newService(nil)
		if err != nil {
			return nil, err
		}
		return svc.CalculateZScore(ctx, req)
	}

	client, err := grpcserver.Dial(remote)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	return client.CalculateZScore(ctx, req)
}

func printZScore(w io.Writer, resp *models.CalculateResponse) {
	fmt.Fprintf(w, "Index:          %s\n", resp.MeasurementType)
	fmt.Fprintf(w, "Z-score:        %.2f\n", resp.ZScore)
	fmt.Fprintf(w, "Status:         %s\n", resp.Classification.Status)
	fmt.Fprintf(w, "Category:       %s\n", resp.Classification.Category)
	if resp.Inputs.AgeLabel != "" {
		fmt.Fprintf(w, "Age:            %s\n", resp.Inputs.AgeLabel)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
