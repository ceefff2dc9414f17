package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bizsite/auth"
)

var (
	adminUsername string
	adminPassword string
	adminEmail    string
	adminPhone    string
	adminContact  string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the admin account",
}

var adminStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an admin account exists",
	Args:  cobra.NoArgs,
	RunE:  runAdminStatus,
}

var adminSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the admin account",
	Args:  cobra.NoArgs,
	RunE:  runAdminSetup,
}

var adminRecoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Set a new password after confirming the recovery email or phone",
	Args:  cobra.NoArgs,
	RunE:  runAdminRecover,
}

var adminUpdateInfoCmd = &cobra.Command{
	Use:   "update-info",
	Short: "Change the recovery email and phone",
	Args:  cobra.NoArgs,
	RunE:  runAdminUpdateInfo,
}

func init() {
	adminSetupCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "Admin username")
	adminSetupCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "Admin password")
	adminSetupCmd.Flags().StringVar(&adminEmail, "email", "", "Recovery email")
	adminSetupCmd.Flags().StringVar(&adminPhone, "phone", "", "Recovery phone")

	adminRecoverCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "Admin username")
	adminRecoverCmd.Flags().StringVar(&adminContact, "contact", "", "Recovery email or phone, exactly as stored")
	adminRecoverCmd.Flags().StringVarP(&adminPassword, "new-password", "p", "", "New password")

	adminUpdateInfoCmd.Flags().StringVar(&adminEmail, "email", "", "New recovery email")
	adminUpdateInfoCmd.Flags().StringVar(&adminPhone, "phone", "", "New recovery phone")

	adminCmd.AddCommand(adminStatusCmd)
	adminCmd.AddCommand(adminSetupCmd)
	adminCmd.AddCommand(adminRecoverCmd)
	adminCmd.AddCommand(adminUpdateInfoCmd)
}

func runAdminStatus(cmd *cobra.Command, args []string) error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	rec, ok, err := st.creds.Admin()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintln(out, "No admin account. Run 'bizsite admin setup' to create one.")
		return nil
	}
	fmt.Fprintf(out, "Username: %s\n", rec.Username)
	fmt.Fprintf(out, "Email:    %s\n", auth.MaskEmail(rec.Email))
	fmt.Fprintf(out, "Phone:    %s\n", auth.MaskPhone(rec.Phone))
	if !rec.CreatedAt.IsZero() {
		fmt.Fprintf(out, "Created:  %s\n", rec.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func runAdminSetup(cmd *cobra.Command, args []string) error {
	if err := auth.ValidateSetup(adminUsername, adminPassword, adminPassword, adminEmail, adminPhone); err != nil {
		return err
	}
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.creds.Create(adminUsername, adminPassword, adminEmail, adminPhone); err != nil {
		if errors.Is(err, auth.ErrAlreadyExists) {
			return fmt.Errorf("an admin account already exists; use 'bizsite admin recover' to change its password")
		}
		return err
	}
	logger.Info("Admin account created", zap.String("username", adminUsername))
	fmt.Fprintf(cmd.OutOrStdout(), "Admin account %q created\n", adminUsername)
	return nil
}

func runAdminRecover(cmd *cobra.Command, args []string) error {
	if err := auth.ValidatePassword(adminPassword, adminPassword); err != nil {
		return err
	}
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	ok, err := st.creds.ResetPassword(adminUsername, adminContact, adminPassword)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("verification failed: username and contact do not match the admin account")
	}
	logger.Info("Admin password reset", zap.String("username", adminUsername))
	fmt.Fprintln(cmd.OutOrStdout(), "Password reset")
	return nil
}

func runAdminUpdateInfo(cmd *cobra.Command, args []string) error {
	if err := auth.ValidateContact(adminEmail, adminPhone); err != nil {
		return err
	}
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	ok, err := st.creds.UpdateInfo(adminEmail, adminPhone)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("no admin account; run 'bizsite admin setup' first")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Recovery details updated")
	return nil
}
