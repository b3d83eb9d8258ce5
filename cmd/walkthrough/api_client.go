package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/walkthrough"
)

// APIClient handles HTTP communication with the backend.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type AuthResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

// Login authenticates a patient and returns the bearer token.
func (c *APIClient) Login(email, password string) (*AuthResponse, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	resp, err := c.post("/auth/login", body, "")
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("login failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// MySeries fetches the active assignment. A nil assignment with a nil error
// means nothing is currently assigned.
func (c *APIClient) MySeries(token string) (*domain.PatientSeries, error) {
	resp, err := c.get("/my-series", token)
	if err != nil {
		return nil, fmt.Errorf("my-series request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("my-series failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var assignment domain.PatientSeries
	if err := json.NewDecoder(resp.Body).Decode(&assignment); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &assignment, nil
}

// Postures fetches the full posture catalog.
func (c *APIClient) Postures(token string) ([]*domain.Posture, error) {
	resp, err := c.get("/postures", token)
	if err != nil {
		return nil, fmt.Errorf("postures request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("postures failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var postures []*domain.Posture
	if err := json.NewDecoder(resp.Body).Decode(&postures); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return postures, nil
}

// SubmitSession posts the completed walkthrough report.
func (c *APIClient) SubmitSession(token string, report walkthrough.Report) error {
	body := map[string]interface{}{
		"seriesId":      report.SeriesID.String(),
		"preIntensity":  string(report.PreIntensity),
		"postIntensity": string(report.PostIntensity),
		"comments":      report.Comments,
		"duration":      report.DurationMinutes,
	}

	resp, err := c.post("/sessions", body, token)
	if err != nil {
		return fmt.Errorf("session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("session submit failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

func (c *APIClient) get(path, token string) (*http.Response, error) {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func (c *APIClient) post(path string, body interface{}, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}
