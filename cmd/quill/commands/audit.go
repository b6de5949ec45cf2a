package commands

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/audit"
)

var (
	auditAddr   string
	auditOutput string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Work with the audit log of a running core",
}

var auditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Fetch the audit log from a running core and write it to a file",
	RunE:  runAuditExport,
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Check that an exported audit file imports cleanly",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditVerify,
}

func init() {
	auditCmd.PersistentFlags().StringVar(&auditAddr, "addr", "http://localhost:7777", "Address of the running inspection API")
	auditExportCmd.Flags().StringVarP(&auditOutput, "output", "o", "audit.json", "Output file")

	auditCmd.AddCommand(auditExportCmd)
	auditCmd.AddCommand(auditVerifyCmd)
}

func runAuditExport(cmd *cobra.Command, args []string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(auditAddr + "/audit/export")
	if err != nil {
		return fmt.Errorf("fetch audit export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch audit export: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := os.WriteFile(auditOutput, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d bytes)\n", auditOutput, len(data))
	return nil
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	log := audit.New(0)
	if err := log.ImportJSON(string(data)); err != nil {
		return err
	}

	stats := log.Stats()
	fmt.Printf("%s: %d events, success rate %.2f\n", args[0], stats.Total, stats.SuccessRate)
	return nil
}
