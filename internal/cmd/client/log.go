// Package client contains Cobra CLI commands for ringd.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

// BaseURLFunc provides the base HTTP API URL (e.g., from env or flag).
type BaseURLFunc func() string

// NewLogCommand constructs the `log` command group and subcommands.
func NewLogCommand(baseURL BaseURLFunc) *cobra.Command {
	logCmd := &cobra.Command{Use: "log", Short: "Log operations"}

	logCmd.AddCommand(
		newLogWriteCommand(baseURL),
		newLogReadCommand(baseURL),
		newLogCatCommand(baseURL),
		newLogSeekCommand(baseURL),
		newLogStatsCommand(baseURL),
	)

	return logCmd
}

// newLogWriteCommand constructs the `log write` subcommand.
func newLogWriteCommand(baseURL BaseURLFunc) *cobra.Command {
	writeCmd := &cobra.Command{
		Use:   "write",
		Short: "Append bytes to the log",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _ := cmd.Flags().GetString("data")
			raw, _ := cmd.Flags().GetBool("raw")
			var body io.Reader
			if data == "-" {
				body = cmd.InOrStdin()
			} else {
				if !raw && !strings.HasSuffix(data, "\n") {
					data += "\n"
				}
				body = strings.NewReader(data)
			}
			resp, err := http.Post(baseURL()+"/v1/records", "application/octet-stream", body)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			b, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusAccepted {
				return fmt.Errorf("write failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "status:", resp.Status)
			return nil
		},
	}
	writeCmd.Flags().StringP("data", "d", "", "Record data; use - to read stdin")
	writeCmd.Flags().Bool("raw", false, "Do not append the record delimiter")
	return writeCmd
}

// newLogReadCommand constructs the `log read` subcommand.
func newLogReadCommand(baseURL BaseURLFunc) *cobra.Command {
	readCmd := &cobra.Command{
		Use:   "read",
		Short: "Read one chunk at a byte offset",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, _ := cmd.Flags().GetInt("at")
			max, _ := cmd.Flags().GetInt("max")
			url := fmt.Sprintf("%s/v1/read?at=%d&max=%d", baseURL(), at, max)
			resp, err := http.Get(url)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("read failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
			}
			_, err = io.Copy(cmd.OutOrStdout(), resp.Body)
			return err
		},
	}
	readCmd.Flags().Int("at", 0, "Byte offset into the retained log")
	readCmd.Flags().Int("max", 4096, "Maximum bytes to return")
	return readCmd
}

// newLogCatCommand constructs the `log cat` subcommand. It reads from the
// start of the retained log until an empty response.
func newLogCatCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "cat",
		Short: "Print the full retained log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cursor := 0
			for {
				url := fmt.Sprintf("%s/v1/read?at=%d&max=4096", baseURL(), cursor)
				resp, err := http.Get(url)
				if err != nil {
					return err
				}
				if resp.StatusCode != http.StatusOK {
					b, _ := io.ReadAll(resp.Body)
					resp.Body.Close()
					return fmt.Errorf("read failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
				}
				b, err := io.ReadAll(resp.Body)
				resp.Body.Close()
				if err != nil {
					return err
				}
				if len(b) == 0 {
					return nil
				}
				if _, err := cmd.OutOrStdout().Write(b); err != nil {
					return err
				}
				cursor += len(b)
			}
		},
	}
}

// newLogSeekCommand constructs the `log seek` subcommand.
func newLogSeekCommand(baseURL BaseURLFunc) *cobra.Command {
	seekCmd := &cobra.Command{
		Use:   "seek",
		Short: "Resolve a record/offset address to a byte cursor",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, _ := cmd.Flags().GetInt("record")
			offset, _ := cmd.Flags().GetInt("offset")
			body, _ := json.Marshal(map[string]int{"record": record, "offset": offset})
			resp, err := http.Post(baseURL()+"/v1/seek", "application/json", bytes.NewReader(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			b, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("seek failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
			}
			var out map[string]int
			if err := json.Unmarshal(b, &out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cursor:", out["cursor"])
			return nil
		},
	}
	seekCmd.Flags().Int("record", 0, "Record index, oldest first")
	seekCmd.Flags().Int("offset", 0, "Byte offset within the record")
	return seekCmd
}

// newLogStatsCommand constructs the `log stats` subcommand.
func newLogStatsCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show log stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := http.Get(baseURL() + "/v1/stats")
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			b, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("stats failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
			}
			var v map[string]any
			if err := json.Unmarshal(b, &v); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}
}
