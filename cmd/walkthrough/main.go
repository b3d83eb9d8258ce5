package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/walkthrough"
)

func main() {
	var (
		apiURL   = flag.String("api", envOr("API_URL", "http://localhost:8080"), "backend API URL")
		email    = flag.String("email", "", "patient email")
		password = flag.String("password", "", "patient password")
		pre      = flag.String("pre", "", "pre-session intensity (none|moderate|intense); prompted when empty")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: walkthrough -email <email> -password <password> [-api URL]")
		os.Exit(1)
	}

	client := NewAPIClient(*apiURL)
	stdin := bufio.NewReader(os.Stdin)

	auth, err := client.Login(*email, *password)
	if err != nil {
		fatal(err)
	}
	token := auth.Token
	fmt.Printf("Logged in as %s (%s)\n", auth.User.Name, auth.User.Role)

	assignment, err := client.MySeries(token)
	if err != nil {
		fatal(err)
	}
	if assignment == nil || assignment.Series == nil {
		fmt.Println("No active series assignment. Ask your instructor to assign one.")
		return
	}
	series := assignment.Series
	fmt.Printf("Active series: %s (estimated %d min, %d sessions completed)\n",
		series.Name, series.EstimatedDurationMinutes, assignment.CompletedSessions)

	catalog, err := client.Postures(token)
	if err != nil {
		fatal(err)
	}

	engine, err := walkthrough.NewEngine(series, catalog)
	if err != nil {
		fatal(err)
	}

	preIntensity := domain.Intensity(*pre)
	for !preIntensity.Valid() {
		preIntensity = domain.Intensity(prompt(stdin, "How do you feel before starting? (none/moderate/intense): "))
	}
	if err := engine.SetPreIntensity(preIntensity); err != nil {
		fatal(err)
	}
	if err := engine.Start(); err != nil {
		fatal(err)
	}

	runExecution(engine, stdin)

	fmt.Println("\nSession complete.")
	postIntensity := domain.Intensity("")
	for !postIntensity.Valid() {
		postIntensity = domain.Intensity(prompt(stdin, "How do you feel now? (none/moderate/intense): "))
	}
	if err := engine.SetPostIntensity(postIntensity); err != nil {
		fatal(err)
	}

	comments := ""
	for strings.TrimSpace(comments) == "" {
		comments = prompt(stdin, "Comments (required): ")
	}
	if err := engine.SetComments(comments); err != nil {
		fatal(err)
	}

	// Submit failures keep the assessment intact, so just retry.
	for {
		_, err := engine.Submit(context.Background(), func(ctx context.Context, report walkthrough.Report) error {
			return client.SubmitSession(token, report)
		})
		if err == nil {
			break
		}
		fmt.Printf("Submit failed: %v\n", err)
		if !strings.EqualFold(prompt(stdin, "Retry? (y/n): "), "y") {
			os.Exit(1)
		}
	}
	fmt.Println("Session saved.")
}

// runExecution walks every posture, rendering the countdown and reading
// commands from stdin. The ticker is recreated on resume and stopped on
// pause or phase change so no timer outlives the execution phase.
func runExecution(engine *walkthrough.Engine, stdin *bufio.Reader) {
	commands := make(chan string)
	go func() {
		for {
			line, err := stdin.ReadString('\n')
			if err != nil {
				close(commands)
				return
			}
			commands <- strings.ToLower(strings.TrimSpace(line))
		}
	}()

	fmt.Println("\nCommands: [p]ause/resume, [n]ext posture, Enter to refresh")

	var ticker *walkthrough.Ticker
	done := make(chan struct{})
	startTicker := func() {
		ticker = walkthrough.NewTicker(engine, time.Second, render)
		go func() {
			ticker.Run()
			if engine.Phase() != walkthrough.PhaseExecution {
				select {
				case done <- struct{}{}:
				default:
				}
			}
		}()
	}

	render(engine)
	startTicker()
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		select {
		case <-done:
			return
		case cmd, ok := <-commands:
			if !ok {
				return
			}
			switch cmd {
			case "p":
				if err := engine.TogglePause(); err != nil {
					continue
				}
				if engine.IsPaused() {
					ticker.Stop()
					fmt.Println("Paused.")
				} else {
					fmt.Println("Resumed.")
					startTicker()
				}
			case "n":
				if err := engine.Next(); err != nil {
					continue
				}
				if engine.Phase() != walkthrough.PhaseExecution {
					ticker.Stop()
					return
				}
				render(engine)
			default:
				render(engine)
			}
		}
	}
}

func render(engine *walkthrough.Engine) {
	slot, ok := engine.CurrentSlot()
	if !ok {
		return
	}
	fmt.Printf("[%d/%d] %s - %s | %s remaining | %.0f%% done\n",
		engine.CurrentIndex()+1, engine.Len(),
		slot.Posture.SanskritName, slot.Posture.SpanishName,
		formatTime(engine.TimeRemaining()), engine.Progress())
}

func formatTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func prompt(stdin *bufio.Reader, label string) string {
	fmt.Print(label)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
