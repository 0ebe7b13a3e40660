// seed_assessments.go posts a batch of exposure scenarios to a running Dosewatch API.
//
// Each CSV row is age,gender,dose_msv,daily_rate_msv,duration_days. Leave
// dose_msv empty for an accumulated exposure; leave daily_rate_msv empty to
// use the server's base rate. Lines starting with # are ignored.
//
// Usage:
//
//	go run scripts/seed_assessments.go -csv scenarios.csv -api http://localhost:8700
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type scenario struct {
	Age          int      `json:"age"`
	Gender       string   `json:"gender"`
	DoseMSv      *float64 `json:"dose_msv,omitempty"`
	DailyRateMSv *float64 `json:"daily_rate_msv,omitempty"`
	DurationDays *float64 `json:"duration_days,omitempty"`
}

type result struct {
	ID             string  `json:"assessment_id"`
	Mode           string  `json:"mode"`
	AdjustedDose   float64 `json:"adjusted_dose_msv"`
	Classification struct {
		Effect string `json:"effect"`
	} `json:"classification"`
}

func main() {
	csvPath := flag.String("csv", "scenarios.csv", "path to scenario CSV")
	apiURL := flag.String("api", "http://localhost:8700", "Dosewatch API base URL")
	clientID := flag.String("client", "seed", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print scenarios without posting")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = 5
	r.TrimLeadingSpace = true

	var items []scenario
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("read csv: %v", err)
		}
		s, err := parseRow(rec)
		if err != nil {
			log.Printf("skip line %d: %v", line, err)
			continue
		}
		items = append(items, s)
	}

	log.Printf("parsed %d scenarios from %s", len(items), *csvPath)

	if *dryRun {
		for i, s := range items {
			body, _ := json.Marshal(s)
			fmt.Printf("[%d] %s\n", i+1, body)
		}
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	created, skipped := 0, 0
	for i, s := range items {
		body, _ := json.Marshal(s)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/assessments", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %d: %v", i+1, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-ID", *clientID)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %d: %v", i+1, err)
			skipped++
			continue
		}
		var res result
		decodeErr := json.NewDecoder(resp.Body).Decode(&res)
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
			log.Printf("skip %d: status %d", i+1, resp.StatusCode)
			skipped++
			continue
		}
		if decodeErr == nil {
			fmt.Printf("[%d] %s %.4f mSv -> %s (%s)\n", i+1, res.Mode, res.AdjustedDose, res.Classification.Effect, res.ID)
		}
		created++
	}

	log.Printf("done: %d computed, %d skipped", created, skipped)
}

func parseRow(rec []string) (scenario, error) {
	age, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return scenario{}, fmt.Errorf("age: %w", err)
	}
	s := scenario{Age: age, Gender: strings.TrimSpace(rec[1])}
	if s.DoseMSv, err = optFloat(rec[2]); err != nil {
		return scenario{}, fmt.Errorf("dose: %w", err)
	}
	if s.DailyRateMSv, err = optFloat(rec[3]); err != nil {
		return scenario{}, fmt.Errorf("daily rate: %w", err)
	}
	if s.DurationDays, err = optFloat(rec[4]); err != nil {
		return scenario{}, fmt.Errorf("duration: %w", err)
	}
	if s.DoseMSv == nil && s.DurationDays == nil {
		return scenario{}, fmt.Errorf("need dose_msv or duration_days")
	}
	return s, nil
}

func optFloat(v string) (*float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
