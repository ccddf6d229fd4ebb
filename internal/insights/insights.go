// Package insights turns a run's aggregated site reports into prioritized
// competitive observations.
package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/seasalt-intel/webintel/internal/domain"
)

const source = "intel-sync"

// Score gap past which an outranking competitor is a critical threat.
const criticalGap = 20

// Generate derives insights from one run's reports. It returns an empty
// slice when the run contains no usable signal, never nil errors.
func Generate(reports []domain.SiteReport) []domain.Insight {
	now := time.Now().UTC()

	var self *domain.SiteReport
	var competitors []domain.SiteReport
	for i := range reports {
		if reports[i].IsSelf {
			self = &reports[i]
		} else {
			competitors = append(competitors, reports[i])
		}
	}
	if len(competitors) == 0 {
		return []domain.Insight{}
	}

	var out []domain.Insight
	add := func(typ, priority, title, body string) {
		out = append(out, domain.Insight{
			Type:      typ,
			Priority:  priority,
			Title:     title,
			Body:      body,
			Source:    source,
			CreatedAt: now,
		})
	}

	reachable := make([]domain.SiteReport, 0, len(competitors))
	for _, c := range competitors {
		if c.Reachable {
			reachable = append(reachable, c)
		}
	}
	if len(reachable) == 0 {
		add(domain.InsightTrend, domain.PriorityLow,
			"No competitor sites reachable",
			"Every competitor site failed to respond this run. Re-run before drawing conclusions.")
		return out
	}

	sort.Slice(reachable, func(i, j int) bool { return reachable[i].SiteScore > reachable[j].SiteScore })
	leader := reachable[0]

	if self != nil && self.Reachable {
		if leader.SiteScore > self.SiteScore {
			priority := domain.PriorityHigh
			if leader.SiteScore-self.SiteScore >= criticalGap {
				priority = domain.PriorityCritical
			}
			add(domain.InsightThreat, priority,
				fmt.Sprintf("%s outscores your site", leader.Name),
				fmt.Sprintf("%s scores %d against your %d. Review their product depth and page performance.",
					leader.Name, leader.SiteScore, self.SiteScore))
		} else {
			add(domain.InsightTrend, domain.PriorityLow,
				"Your site leads the field",
				fmt.Sprintf("Your score of %d tops the best competitor score of %d.",
					self.SiteScore, leader.SiteScore))
		}
	}

	weakest := reachable[len(reachable)-1]
	if weakest.Code != leader.Code && weakest.SiteScore < leader.SiteScore {
		add(domain.InsightOpportunity, domain.PriorityMedium,
			fmt.Sprintf("%s is the weakest presence", weakest.Name),
			fmt.Sprintf("%s scores only %d. Their customers are the easiest to win over.",
				weakest.Name, weakest.SiteScore))
	}

	direct := 0
	pixelUsers := 0
	for _, c := range reachable {
		if c.HasEcommerce {
			direct++
		}
		for _, tech := range c.TechStack {
			if tech == "Facebook Pixel" {
				pixelUsers++
				break
			}
		}
	}
	if direct > 0 {
		add(domain.InsightAction, domain.PriorityMedium,
			fmt.Sprintf("%d competitors sell direct", direct),
			"Competitors with their own checkout control pricing and customer data. Match their catalog coverage.")
	}
	if pixelUsers > 0 {
		add(domain.InsightAction, domain.PriorityHigh,
			fmt.Sprintf("%d competitors run retargeting pixels", pixelUsers),
			"They are building remarketing audiences from shared customers. Consider matching the investment.")
	}

	marketplaceLeader := reachable[0]
	for _, c := range reachable[1:] {
		if c.MarketplaceCount > marketplaceLeader.MarketplaceCount {
			marketplaceLeader = c
		}
	}
	if marketplaceLeader.MarketplaceCount > 0 {
		add(domain.InsightTrend, domain.PriorityMedium,
			fmt.Sprintf("%s spans %d marketplaces", marketplaceLeader.Name, marketplaceLeader.MarketplaceCount),
			"Marketplace breadth is where discovery happens for this category.")
	}

	unreachable := len(competitors) - len(reachable)
	if unreachable > 0 {
		add(domain.InsightOpportunity, domain.PriorityLow,
			fmt.Sprintf("%d competitor sites are down", unreachable),
			"Sites that stay unreachable are losing their organic traffic to everyone else.")
	}

	return out
}
