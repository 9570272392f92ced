package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/igegov/cv-portfolio/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a bcrypt hash for EDITOR_PASSWORD_HASH",
	Long: "Hashes the editor password with bcrypt. The password is read from --password or the " +
		"first line of stdin; PASSWORD_PEPPER is appended when set.",
	RunE: runHashPassword,
}

var (
	hashPassword string
	hashCost     int
)

func init() {
	hashPasswordCmd.Flags().StringVar(&hashPassword, "password", "", "Password to hash (default: read stdin)")
	hashPasswordCmd.Flags().IntVar(&hashCost, "cost", 12, "bcrypt cost")
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(cmd *cobra.Command, _ []string) error {
	return hashEditorPassword(hashPassword, hashCost, os.Getenv("PASSWORD_PEPPER"), cmd.InOrStdin(), cmd.OutOrStdout())
}

func hashEditorPassword(password string, cost int, pepper string, in io.Reader, out io.Writer) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return fmt.Errorf("--cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if password == "" {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	editor := &config.EditorConfig{BcryptCost: cost, Pepper: pepper}
	hash, err := editor.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, hash)
	return nil
}
