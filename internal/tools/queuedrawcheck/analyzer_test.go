package queuedrawcheck_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/devnullvoid/pixgrid/internal/tools/queuedrawcheck"
)

func TestAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), queuedrawcheck.Analyzer, "a")
}
