package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"
)

const apiBase = "http://localhost:8080/api"

type User struct {
	Email    string
	Password string
	Token    string
	UserID   string
}

type AuthResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	Token string `json:"token"`
}

type Posture struct {
	ID           string `json:"id"`
	SpanishName  string `json:"spanishName"`
	SanskritName string `json:"sanskritName"`
}

type TherapyType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Series struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Patient struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

func registerUser(email, name, password, role string) (*User, error) {
	body, _ := json.Marshal(map[string]string{
		"email":           email,
		"password":        password,
		"confirmPassword": password,
		"name":            name,
		"role":            role,
	})

	resp, err := http.Post(apiBase+"/auth/register", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("registration failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	return &User{
		Email:    result.User.Email,
		Password: password,
		Token:    result.Token,
		UserID:   result.User.ID,
	}, nil
}

func getJSON(token, path string, v interface{}) error {
	req, _ := http.NewRequest("GET", apiBase+path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s failed (%d): %s", path, resp.StatusCode, string(bodyBytes))
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

func postJSON(token, path string, payload, v interface{}) error {
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", apiBase+path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s failed (%d): %s", path, resp.StatusCode, string(bodyBytes))
	}

	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func generateEmail(prefix string) string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	random := make([]byte, 4)
	for i := range random {
		random[i] = letters[rand.Intn(len(letters))]
	}
	return fmt.Sprintf("%s_%d_%s@example.com", prefix, time.Now().Unix(), string(random))
}

func main() {
	rand.Seed(time.Now().UnixNano())

	fmt.Println("Setting up a demo instructor and patient...")
	fmt.Println("(the server must be running with SEED_CATALOG=true)")

	password := "demopassword123"

	// The instructor must exist before the patient registers so the patient
	// profile links to them.
	fmt.Println("\nRegistering instructor...")
	instructor, err := registerUser(generateEmail("instructora"), "Instructora Demo", password, "instructor")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register instructor: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  ✓ Instructor: %s\n", instructor.Email)

	fmt.Println("\nRegistering patient...")
	patientUser, err := registerUser(generateEmail("paciente"), "Paciente Demo", password, "patient")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register patient: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  ✓ Patient: %s\n", patientUser.Email)

	// Build a series from the seeded catalog. The catalog has fewer than six
	// postures, so repeat them to meet the series minimum.
	fmt.Println("\nLoading catalog...")
	var postures []Posture
	if err := getJSON(instructor.Token, "/postures", &postures); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load postures: %v\n", err)
		os.Exit(1)
	}
	if len(postures) == 0 {
		fmt.Fprintln(os.Stderr, "Catalog is empty; start the server with SEED_CATALOG=true")
		os.Exit(1)
	}
	var therapyTypes []TherapyType
	if err := getJSON(instructor.Token, "/therapy-types", &therapyTypes); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load therapy types: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  ✓ %d postures, %d therapy types\n", len(postures), len(therapyTypes))

	postureIDs := make([]string, 0, 6)
	for i := 0; len(postureIDs) < 6; i++ {
		postureIDs = append(postureIDs, postures[i%len(postures)].ID)
	}

	fmt.Println("\nCreating series...")
	var series Series
	err = postJSON(instructor.Token, "/series", map[string]interface{}{
		"name":                "Serie demo matutina",
		"description":         "Rutina de demostración generada automáticamente",
		"therapyTypeId":       therapyTypes[0].ID,
		"postureIds":          postureIDs,
		"postureDurations":    []int{30, 30, 45, 45, 60, 60},
		"recommendedSessions": 10,
	}, &series)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create series: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  ✓ Series created: %s\n", series.Name)

	fmt.Println("\nAssigning series to patient...")
	var patients []Patient
	if err := getJSON(instructor.Token, "/patients", &patients); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list patients: %v\n", err)
		os.Exit(1)
	}
	var patientID string
	for _, p := range patients {
		if p.UserID == patientUser.UserID {
			patientID = p.ID
		}
	}
	if patientID == "" {
		fmt.Fprintln(os.Stderr, "Patient profile not found under the instructor")
		os.Exit(1)
	}
	err = postJSON(instructor.Token, "/patients/"+patientID+"/assign-series", map[string]string{
		"seriesId": series.ID,
	}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to assign series: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("  ✓ Series assigned")

	fmt.Println("\n" + "============================================================")
	fmt.Println("DEMO SETUP COMPLETE")
	fmt.Println("============================================================")
	fmt.Println("\nRun a session with:")
	fmt.Printf("  go run ./cmd/walkthrough -email %s -password %s\n", patientUser.Email, password)
}
