package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpaulson/cartful/internal/cli"
	"github.com/jpaulson/cartful/internal/model"
	"github.com/jpaulson/cartful/internal/ocr"
)

// ocrStatsFile is the JSON shape the OCR engine exports for one scan.
type ocrStatsFile struct {
	Confidence float64 `json:"confidence"`
	LineCount  int     `json:"lineCount"`
	BlockCount int     `json:"blockCount"`
	FullText   string  `json:"fullText"`
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <ocr-stats.json>",
		Short: "Analyze OCR scan quality for a receipt",
		Long: `Score an OCR pass and recommend whether the receipt can be parsed
locally or should go to the online parser. The input file is the stats
JSON the OCR engine exports (confidence, line/block counts, raw text).`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read stats file: %w", err)
			}

			var stats ocrStatsFile
			if err := json.Unmarshal(data, &stats); err != nil {
				return fmt.Errorf("failed to parse stats file: %w", err)
			}

			analysis := ocr.Analyze(model.OCRStats{
				Confidence: stats.Confidence,
				LineCount:  stats.LineCount,
				BlockCount: stats.BlockCount,
				FullText:   stats.FullText,
			})

			fmt.Println(cli.TitleStyle.Render(cli.ReceiptIcon + " Scan quality"))
			fmt.Printf("Overall score:   %.2f\n", analysis.OverallScore)
			fmt.Printf("  OCR confidence %.2f · text density %.2f · prices %.2f · structure %.2f\n",
				analysis.Factors.OCRConfidence,
				analysis.Factors.TextDensity,
				analysis.Factors.PricePattern,
				analysis.Factors.Structure)
			fmt.Printf("Recommendation:  %s\n", analysis.Recommendation)
			fmt.Println(cli.SubtleStyle.Render(analysis.Reasoning))

			for _, issue := range analysis.Issues {
				fmt.Println(cli.FormatWarning(issue))
			}

			return nil
		},
	}
}
