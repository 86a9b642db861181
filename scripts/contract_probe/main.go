package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/noah-isme/hrms-lite-console/internal/models"
	"github.com/noah-isme/hrms-lite-console/internal/repository"
	"github.com/noah-isme/hrms-lite-console/internal/service"
	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
	"github.com/noah-isme/hrms-lite-console/pkg/hrapi"
)

// probe is one read-only call the console depends on.
type probe struct {
	Name     string
	Critical bool
	Run      func(ctx context.Context) (string, error)
}

type result struct {
	Probe    probe
	Detail   string
	Err      error
	Duration time.Duration
}

func main() {
	var (
		apiBase string
		timeout time.Duration
	)
	flag.StringVar(&apiBase, "api-base", "http://localhost:8000", "HR API base URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "per-call timeout")
	flag.Parse()

	client := hrapi.NewClient(hrapi.Config{BaseURL: apiBase, Timeout: timeout})
	employees := service.NewEmployeeService(repository.NewEmployeeRepository(client), nil, nil)
	attendance := service.NewAttendanceService(repository.NewAttendanceRepository(client), nil, nil, nil)

	var firstEmployee string
	probes := []probe{
		{Name: "GET /", Critical: false, Run: func(ctx context.Context) (string, error) {
			return "root answered", client.Ping(ctx)
		}},
		{Name: "GET /api/employees", Critical: true, Run: func(ctx context.Context) (string, error) {
			list, err := employees.List(ctx)
			if err != nil {
				return "", err
			}
			for _, e := range list {
				if e.EmployeeID == "" {
					return "", errors.New("employee without employee_id")
				}
			}
			if len(list) > 0 {
				firstEmployee = list[0].EmployeeID
			}
			return fmt.Sprintf("%d employees", len(list)), nil
		}},
		{Name: "GET /api/employees/{employee_id}", Critical: false, Run: func(ctx context.Context) (string, error) {
			if firstEmployee == "" {
				return "skipped, no employees", nil
			}
			e, err := employees.Get(ctx, firstEmployee)
			if err != nil {
				return "", err
			}
			return "found " + e.EmployeeID, nil
		}},
		{Name: "GET /api/attendance", Critical: true, Run: func(ctx context.Context) (string, error) {
			records, err := attendance.List(ctx, models.AttendanceFilter{})
			if err != nil {
				return "", err
			}
			for _, r := range records {
				if !r.Status.Valid() {
					return "", fmt.Errorf("unexpected status %q", r.Status)
				}
			}
			return fmt.Sprintf("%d records", len(records)), nil
		}},
		{Name: "GET /api/attendance/stats", Critical: true, Run: func(ctx context.Context) (string, error) {
			stats, err := attendance.Stats(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d employees with stats", len(stats)), nil
		}},
	}

	results := make([]result, 0, len(probes))
	breaking := 0
	for _, p := range probes {
		res := run(p, timeout)
		if res.Err != nil && p.Critical {
			breaking++
		}
		results = append(results, res)
	}

	printReport(apiBase, results)
	fmt.Printf("Breaking failures: %d\n", breaking)
	if breaking > 0 {
		os.Exit(1)
	}
}

func run(p probe, timeout time.Duration) result {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	start := time.Now()
	detail, err := p.Run(ctx)
	return result{Probe: p, Detail: detail, Err: err, Duration: time.Since(start)}
}

func printReport(apiBase string, results []result) {
	fmt.Println("HR API Contract Probe")
	fmt.Println("=====================")
	fmt.Println("Target:", apiBase)
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s (%s)\n", status, res.Probe.Name, res.Duration)
		if res.Err != nil {
			fmt.Printf("  Error: %s | Critical: %t\n", appErrors.MessageOr(res.Err, res.Err.Error()), res.Probe.Critical)
		} else {
			fmt.Printf("  %s\n", res.Detail)
		}
	}
}
