package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

var statePath = filepath.Join(datadir, "state.json")

func getState() (map[string]string, error) {
	file, err := os.ReadFile(statePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := writeState(initialState); err != nil {
			return nil, err
		}
		return initialState, nil
	}

	data := map[string]string{}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func setState(partialState map[string]string) error {
	state, err := getState()
	if err != nil {
		return err
	}
	for key, value := range partialState {
		state[key] = value
	}
	return writeState(state)
}

func writeState(state map[string]string) error {
	dir := filepath.Dir(statePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %v", err)
		}
	}
	buf, _ := json.MarshalIndent(state, "", "  ")
	if err := os.WriteFile(statePath, buf, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}
	return nil
}

// apiServer resolves the configured selectiond base URL.
func apiServer() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	server, ok := state["apiserver"]
	if !ok || server == "" {
		return "", fmt.Errorf("set apiserver with `selectctl config set apiserver <url>`")
	}
	return server, nil
}

// postJSON POSTs req as JSON to path on the configured selectiond instance
// and decodes the response body into resp.
func postJSON(path string, req, resp interface{}) error {
	server, err := apiServer()
	if err != nil {
		return err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	httpResp, err := client.Post(server+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("calling selectiond: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		var buf bytes.Buffer
		buf.ReadFrom(httpResp.Body)
		return fmt.Errorf("selectiond returned %s: %s", httpResp.Status, buf.String())
	}

	return json.NewDecoder(httpResp.Body).Decode(resp)
}

func jsonPrint(v interface{}) (string, error) {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(buf), nil
}
