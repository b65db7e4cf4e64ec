package scaffold

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	completionBanner = "🎯 Project template setup complete!"
	nextStepsTitle   = "🚀 NEXT STEPS:"
)

const nextSteps = `--------------
1️⃣ Add your dataset inside the 'data/' folder (create one if needed).
2️⃣ Update 'config/config.yaml' with file paths and model parameters.
3️⃣ Implement:
   - data_ingestion/data_loader.py for loading datasets
   - data_preprocessing/preprocess.py for cleaning and encoding
   - model/train.py for model training
   - model/evaluate.py for testing & metrics
4️⃣ Run 'python main.py' to orchestrate the ML pipeline.
`

// printGuidance writes the completion banner and next steps to w.
// Styling is dropped automatically when w is not a terminal.
func printGuidance(w io.Writer) error {
	renderer := lipgloss.NewRenderer(w)
	banner := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	title := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	_, err := fmt.Fprintf(w, "\n%s\n\n%s\n%s\n",
		banner.Render(completionBanner),
		title.Render(nextStepsTitle),
		nextSteps,
	)

	return err //nolint:wrapcheck
}
