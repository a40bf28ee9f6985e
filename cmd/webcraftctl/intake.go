package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"webcraft/intake"
	"webcraft/models"
)

// intakeFile is the YAML form of a full project request. The consultation
// block is the booking made on the last step.
type intakeFile struct {
	ProjectType  string                     `yaml:"projectType"`
	BusinessInfo models.BusinessInfo        `yaml:"businessInfo"`
	Requirements models.Requirements        `yaml:"requirements"`
	Technical    models.Technical           `yaml:"technical"`
	Consultation models.ConsultationBooking `yaml:"consultation"`
}

func loadIntakeFile(path string) (*intakeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f intakeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

func NewIntakeCommand(opts *RootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "intake",
		Short: "Walk the five-step project intake from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadIntakeFile(file)
			if err != nil {
				return err
			}

			w := intake.NewWizard(opts.sink)
			defer w.Close()

			inputs := []intake.StepInput{
				intake.ProjectTypeInput{ProjectType: f.ProjectType},
				intake.BusinessInfoInput{BusinessInfo: f.BusinessInfo},
				intake.RequirementsInput{Requirements: f.Requirements},
				intake.TechnicalInput{Technical: f.Technical},
			}
			for _, in := range inputs {
				step := w.Current().Number()
				if err := w.Advance(in); err != nil {
					return fmt.Errorf("step %d: %w", step, failure(err))
				}
			}

			if err := w.Submit(cmd.Context(), f.Consultation); err != nil {
				return fmt.Errorf("step 5: %w", failure(err))
			}
			snap := w.Snapshot()
			return opts.print(cmd.OutOrStdout(), result{
				Message:  snap.Message,
				MeetLink: intake.MeetLinkOrPlaceholder(w.LastMeetLink()),
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "request.yaml", "project request YAML file")
	return cmd
}
