package insights_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasalt-intel/webintel/internal/domain"
	"github.com/seasalt-intel/webintel/internal/insights"
)

func report(name, code string, score int, self bool) domain.SiteReport {
	return domain.SiteReport{Name: name, Code: code, SiteScore: score, IsSelf: self, Reachable: true}
}

func findByType(t *testing.T, list []domain.Insight, typ string) domain.Insight {
	t.Helper()
	for _, insight := range list {
		if insight.Type == typ {
			return insight
		}
	}
	t.Fatalf("no insight of type %q", typ)
	return domain.Insight{}
}

func TestGenerateThreatWhenOutranked(t *testing.T) {
	t.Parallel()

	out := insights.Generate([]domain.SiteReport{
		report("Our Store", "SS", 40, true),
		report("Rival", "RV", 75, false),
	})

	threat := findByType(t, out, domain.InsightThreat)
	assert.Equal(t, domain.PriorityCritical, threat.Priority)
	assert.Contains(t, threat.Title, "Rival")
}

func TestGenerateHighPriorityForNarrowGap(t *testing.T) {
	t.Parallel()

	out := insights.Generate([]domain.SiteReport{
		report("Our Store", "SS", 60, true),
		report("Rival", "RV", 70, false),
	})

	threat := findByType(t, out, domain.InsightThreat)
	assert.Equal(t, domain.PriorityHigh, threat.Priority)
}

func TestGenerateTrendWhenLeading(t *testing.T) {
	t.Parallel()

	out := insights.Generate([]domain.SiteReport{
		report("Our Store", "SS", 80, true),
		report("Rival", "RV", 50, false),
	})

	trend := findByType(t, out, domain.InsightTrend)
	assert.Contains(t, trend.Title, "leads")
}

func TestGenerateActionsFromTechSignals(t *testing.T) {
	t.Parallel()

	rival := report("Rival", "RV", 70, false)
	rival.HasEcommerce = true
	rival.TechStack = []string{"Shopify", "Facebook Pixel"}

	out := insights.Generate([]domain.SiteReport{
		report("Our Store", "SS", 60, true),
		rival,
	})

	var actions []domain.Insight
	for _, insight := range out {
		if insight.Type == domain.InsightAction {
			actions = append(actions, insight)
		}
	}
	require.Len(t, actions, 2)
}

func TestGenerateNoCompetitors(t *testing.T) {
	t.Parallel()

	out := insights.Generate([]domain.SiteReport{report("Our Store", "SS", 60, true)})

	assert.Empty(t, out)
}

func TestGenerateAllCompetitorsDown(t *testing.T) {
	t.Parallel()

	down := report("Rival", "RV", 0, false)
	down.Reachable = false

	out := insights.Generate([]domain.SiteReport{down})

	require.Len(t, out, 1)
	assert.Equal(t, domain.InsightTrend, out[0].Type)
}
