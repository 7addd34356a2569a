package handlers

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/tfbootstrap/tfbootstrap/internal/orchestration"
	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308"))
)

// printSummary writes the human-readable result of a provision run.
func printSummary(w io.Writer, s *orchestration.Summary) {
	heading := "Account provisioned!"
	if s.Resumed {
		heading = "Account resumed."
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render(heading))
	fmt.Fprintln(w)
	printField(w, "Account ID", s.AccountID)
	printField(w, "Account", s.AccountName)
	printField(w, "Profile", s.ProfileName)
	printField(w, "Console", s.ConsoleURL)

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionStyle.Render("Identities"))
	for _, id := range s.Identities {
		switch id.Kind {
		case cloud.ConsoleAdmin:
			printField(w, id.Username, "console access with the password you provided")
		case cloud.CLIAutomation:
			printField(w, id.Username, fmt.Sprintf("access key saved under profile %s", s.ProfileName))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionStyle.Render("Rendered"))
	printField(w, "State backend", s.BootstrapDir)
	printField(w, "Project skeleton", s.SkeletonDir)
	printField(w, "Files", fmt.Sprintf("%d", len(s.FilesWritten)))

	if s.BucketNameTaken {
		fmt.Fprintln(w)
		fmt.Fprintln(w, warningStyle.Render(
			"Warning: the state bucket name is already taken. Expected on a re-run;\n"+
				"otherwise pick a different account name before applying."))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionStyle.Render("Next Steps"))
	fmt.Fprintf(w, "  1. cd %s && terraform init && terraform apply\n", s.BootstrapDir)
	fmt.Fprintf(w, "  2. cd %s && terraform init\n", s.SkeletonDir)
	fmt.Fprintf(w, "  3. Sign in at %s and enable MFA for the admin user\n", s.ConsoleURL)
	fmt.Fprintln(w)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-18s", label+":")), value)
}
