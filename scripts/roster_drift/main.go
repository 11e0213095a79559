// Command roster_drift compares the gateway's cached roster view of one or
// more courses against the platform's live roster. A drift means the
// snapshot cache is serving data the platform no longer agrees with, which
// should only happen within the cache TTL window.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
)

type rosterStudent struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	TeamName    string `json:"teamName"`
	SectionName string `json:"sectionName"`
}

type gatewayResponse struct {
	Data struct {
		Students []rosterStudent `json:"students"`
	} `json:"data"`
}

type platformResponse struct {
	Students []rosterStudent `json:"students"`
}

type driftReport struct {
	CourseID        string
	GatewayCount    int
	PlatformCount   int
	MissingEmails   []string
	UnexpectedEmail []string
	Err             error
}

func main() {
	var (
		gatewayBase  string
		platformBase string
		token        string
		backendKey   string
		courses      string
		timeout      time.Duration
	)

	flag.StringVar(&gatewayBase, "gateway-base", "http://localhost:8080/api/v1", "Gateway API base URL")
	flag.StringVar(&platformBase, "platform-base", "http://localhost:8484/webapi", "Platform API base URL")
	flag.StringVar(&token, "token", "", "Bearer token for the gateway")
	flag.StringVar(&backendKey, "backend-key", "", "Backend key for the platform")
	flag.StringVar(&courses, "courses", "", "Comma-separated course IDs")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	courseIDs := splitCourses(courses)
	if len(courseIDs) == 0 {
		log.Fatal("no courses given, use -courses CS1101,CS2040")
	}

	client := &http.Client{Timeout: timeout}
	drifted := 0
	for _, courseID := range courseIDs {
		report := compareCourse(client, gatewayBase, platformBase, token, backendKey, courseID)
		printReport(report)
		if report.Err != nil || len(report.MissingEmails) > 0 || len(report.UnexpectedEmail) > 0 {
			drifted++
		}
	}

	fmt.Printf("Courses drifted: %d of %d\n", drifted, len(courseIDs))
	if drifted > 0 {
		os.Exit(1)
	}
}

func splitCourses(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func compareCourse(client *http.Client, gatewayBase, platformBase, token, backendKey, courseID string) driftReport {
	report := driftReport{CourseID: courseID}

	gatewayURL := fmt.Sprintf("%s/courses/%s/students", strings.TrimRight(gatewayBase, "/"), courseID)
	var gateway gatewayResponse
	if err := fetchJSON(client, gatewayURL, "Authorization", bearerValue(token), &gateway); err != nil {
		report.Err = fmt.Errorf("gateway request failed: %w", err)
		return report
	}

	platformURL := fmt.Sprintf("%s/students?courseid=%s", strings.TrimRight(platformBase, "/"), courseID)
	var platform platformResponse
	if err := fetchJSON(client, platformURL, "Backend-Key", backendKey, &platform); err != nil {
		report.Err = fmt.Errorf("platform request failed: %w", err)
		return report
	}

	report.GatewayCount = len(gateway.Data.Students)
	report.PlatformCount = len(platform.Students)

	cached := emailSet(gateway.Data.Students)
	live := emailSet(platform.Students)

	for email := range live {
		if _, ok := cached[email]; !ok {
			report.MissingEmails = append(report.MissingEmails, email)
		}
	}
	for email := range cached {
		if _, ok := live[email]; !ok {
			report.UnexpectedEmail = append(report.UnexpectedEmail, email)
		}
	}
	sort.Strings(report.MissingEmails)
	sort.Strings(report.UnexpectedEmail)

	return report
}

func bearerValue(token string) string {
	if token == "" {
		return ""
	}
	return "Bearer " + token
}

func fetchJSON(client *http.Client, url, headerName, headerValue string, dest interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if headerValue != "" {
		req.Header.Set(headerName, headerValue)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, dest)
}

func emailSet(students []rosterStudent) map[string]struct{} {
	out := make(map[string]struct{}, len(students))
	for _, student := range students {
		out[student.Email] = struct{}{}
	}
	return out
}

func printReport(report driftReport) {
	status := "OK"
	if report.Err != nil {
		status = "ERROR"
	} else if len(report.MissingEmails) > 0 || len(report.UnexpectedEmail) > 0 {
		status = "DRIFT"
	}
	fmt.Printf("[%s] %s\n", status, report.CourseID)
	if report.Err != nil {
		fmt.Printf("  Error: %v\n", report.Err)
		return
	}
	fmt.Printf("  Gateway: %d students | Platform: %d students\n", report.GatewayCount, report.PlatformCount)
	if len(report.MissingEmails) > 0 {
		fmt.Printf("  Missing from gateway: %s\n", strings.Join(report.MissingEmails, ", "))
	}
	if len(report.UnexpectedEmail) > 0 {
		fmt.Printf("  Stale in gateway: %s\n", strings.Join(report.UnexpectedEmail, ", "))
	}
}
