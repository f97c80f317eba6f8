package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ArthurFreire0/dashboard-School/core/report"
)

func (cli *commandLine) ingest(path, variant string) error {
	data, err := readFileFunc(path)
	if err != nil {
		return err
	}
	filename := filepath.Base(path)
	ctx := context.Background()

	if variant == "school" {
		res, err := cli.svc.IngestSchool(ctx, filename, data, report.SchoolOptions{})
		if err != nil {
			return err
		}
		fmt.Printf("upload %s: %d report cards (%d approved, %d failed)\n",
			res.UploadID, len(res.Cards), res.Summary.Approved, res.Summary.Failed)
		return nil
	}

	res, err := cli.svc.IngestUniversity(ctx, filename, data)
	if err != nil {
		return err
	}
	high := 0
	for _, a := range res.Assessments {
		if a.RiskLevel == report.RiskHigh {
			high++
		}
	}
	fmt.Printf("upload %s: %d records, %d students, %d at high churn risk\n",
		res.UploadID, len(res.Records), len(res.Assessments), high)
	return nil
}
