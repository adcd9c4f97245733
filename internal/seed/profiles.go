// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package seed

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vibescope/vibescope/internal/models"
)

// rng is a mulberry32 generator. It is tiny, fast, and fully determined
// by its 32-bit state, which is what makes seed runs reproducible.
type rng struct {
	state uint32
}

func newRNG(seed int64) *rng {
	return &rng{state: uint32(seed)}
}

// Float64 returns the next value in [0, 1).
func (r *rng) Float64() float64 {
	r.state += 0x6d2b79f5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// intn returns a uniform int in [lo, hi] inclusive.
func (g *Generator) intn(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(g.rng.Float64()*float64(hi-lo+1))
}

func (g *Generator) pick(items []string) string {
	return items[g.intn(0, len(items)-1)]
}

// weighted is a name with its normalized selection probability.
type weighted struct {
	name   string
	weight float64
}

func (g *Generator) pickWeighted(pairs []weighted) string {
	r := g.rng.Float64()
	for _, p := range pairs {
		r -= p.weight
		if r <= 0 {
			return p.name
		}
	}
	return pairs[len(pairs)-1].name
}

// zipfWeights assigns rank-based weights 1/(i+1)^s, normalized to sum 1.
// Earlier items dominate, matching how a few models and issues attract
// most reports.
func zipfWeights(items []string, s float64) []weighted {
	pairs := make([]weighted, len(items))
	sum := 0.0
	for i := range items {
		w := 1 / math.Pow(float64(i+1), s)
		pairs[i] = weighted{name: items[i], weight: w}
		sum += w
	}
	return normalizeWeights(pairs, sum)
}

func normalizeWeights(pairs []weighted, sum float64) []weighted {
	if sum == 0 {
		sum = 1
	}
	out := make([]weighted, len(pairs))
	for i, p := range pairs {
		out[i] = weighted{name: p.name, weight: p.weight / sum}
	}
	return out
}

func sumWeights(pairs []weighted) float64 {
	sum := 0.0
	for _, p := range pairs {
		sum += p.weight
	}
	return sum
}

const (
	modelSkew = 1.4
	issueSkew = 1.25
)

var seedModels = []string{"GPT-5", "GPT-4o", "Gemini 2.5", "Claude 3.7", "Grok-3"}

var modelWeights = zipfWeights(seedModels, modelSkew)

var envWeights = normalizeWeights([]weighted{
	{"ChatGPT Web", 0.42},
	{"Cursor IDE", 0.22},
	{"OpenAI API", 0.17},
	{"Notion AI", 0.08},
	{"Replit AI", 0.07},
	{"Bard app", 0.04},
}, 1.0)

var issueBase = zipfWeights(models.IssueCategories, issueSkew)

var extraTags = []string{
	"Context Memory", "Hallucinations", "Latency", "Refusals", "Formatting",
	"Tool Use", "RAG", "Localization", "Safety", "Policy",
}

var countries = []string{"US", "DE", "GB", "IN", "CA", "FR", "AU", "BR", "JP", "NL"}

var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/125.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/124.0 Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 Version/17.5 Mobile/15E148 Safari/604.1",
	"Mozilla/5.0 (iPad; CPU OS 17_5 like Mac OS X) AppleWebKit/605.1.15 Version/17.5 Mobile/15E148 Safari/604.1",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X) Gecko/20100101 Firefox/126.0",
}

// issueWeightsFor biases the issue distribution per model family. Each
// family has a signature complaint profile.
func issueWeightsFor(model string) []weighted {
	mult := make(map[string]float64, len(models.IssueCategories))
	for _, c := range models.IssueCategories {
		mult[c] = 1
	}

	m := strings.ToLower(model)
	switch {
	case strings.Contains(m, "gpt-5"):
		mult["Context Memory"] *= 1.5
		mult["Slowness"] *= 1.25
		mult["Tool Use"] *= 1.2
	case strings.Contains(m, "gpt-4"):
		mult["Formatting"] *= 1.25
		mult["Tone"] *= 1.1
	case strings.Contains(m, "claude"):
		mult["Refusals"] *= 1.6
		mult["Tone"] *= 1.25
	case strings.Contains(m, "gemini"):
		mult["Hallucinations"] *= 1.6
		mult["RAG"] *= 1.2
	case strings.Contains(m, "grok"):
		mult["Safety"] *= 1.4
		mult["Hallucinations"] *= 1.2
	}

	pairs := make([]weighted, len(issueBase))
	for i, p := range issueBase {
		pairs[i] = weighted{name: p.name, weight: p.weight * mult[p.name]}
	}
	return normalizeWeights(pairs, sumWeights(pairs))
}

// spike is an incident window expressed in days before the run date, so
// every seed run lands its incidents inside the dashboard window.
type spike struct {
	model       string // substring match, empty matches all
	environment string
	category    string
	fromDaysAgo int
	toDaysAgo   int
	factor      float64
}

var spikes = []spike{
	{model: "GPT-5", environment: "Cursor IDE", category: "Context Memory", fromDaysAgo: 11, toDaysAgo: 9, factor: 3.2},
	{environment: "ChatGPT Web", category: "Slowness", fromDaysAgo: 4, toDaysAgo: 4, factor: 2.5},
}

// spikeFactor returns the volume multiplier for a report generated
// daysAgo days before the run date.
func (g *Generator) spikeFactor(daysAgo int, r *models.Report) float64 {
	for _, s := range spikes {
		if daysAgo > s.fromDaysAgo || daysAgo < s.toDaysAgo {
			continue
		}
		if s.model != "" && !strings.Contains(r.Model, s.model) {
			continue
		}
		if r.Environment == s.environment && r.IssueCategory == s.category {
			return s.factor
		}
	}
	return 1
}

func guessMode(environment, category string) string {
	if environment == "Cursor IDE" || environment == "Replit AI" {
		return "code"
	}
	if category == "Tool Use" || category == "RAG" {
		return "multimodal"
	}
	return "text"
}

// pickSeverity draws a severity skewed by category. Slowness and memory
// complaints run hotter than cosmetic ones.
func (g *Generator) pickSeverity(category string) models.Severity {
	r := g.rng.Float64()
	switch category {
	case "Slowness", "Context Memory":
		switch {
		case r < 0.05:
			return models.SeverityBlocking
		case r < 0.25:
			return models.SeverityMajor
		case r < 0.75:
			return models.SeverityNoticeable
		}
		return models.SeverityMinor
	case "Refusals", "Safety":
		switch {
		case r < 0.04:
			return models.SeverityBlocking
		case r < 0.3:
			return models.SeverityMajor
		case r < 0.8:
			return models.SeverityNoticeable
		}
		return models.SeverityMinor
	}
	switch {
	case r < 0.02:
		return models.SeverityBlocking
	case r < 0.2:
		return models.SeverityMajor
	case r < 0.75:
		return models.SeverityNoticeable
	}
	return models.SeverityMinor
}

func (g *Generator) pickRepro(category string) models.Repro {
	r := g.rng.Float64()
	switch category {
	case "Context Memory":
		switch {
		case r < 0.5:
			return models.ReproOften
		case r < 0.85:
			return models.ReproSometimes
		case r < 0.97:
			return models.ReproAlways
		}
		return models.ReproOnce
	case "Slowness":
		switch {
		case r < 0.4:
			return models.ReproOften
		case r < 0.8:
			return models.ReproSometimes
		case r < 0.95:
			return models.ReproAlways
		}
		return models.ReproOnce
	}
	switch {
	case r < 0.2:
		return models.ReproOften
	case r < 0.75:
		return models.ReproSometimes
	case r < 0.95:
		return models.ReproOnce
	}
	return models.ReproAlways
}

// pickVibe draws a direction. Implicit signals exist because something
// felt off, so they skew harder toward worse than explicit feedback.
func (g *Generator) pickVibe(implicit bool) models.Vibe {
	r := g.rng.Float64()
	if implicit {
		switch {
		case r < 0.82:
			return models.VibeWorse
		case r < 0.92:
			return models.VibeNormal
		}
		return models.VibeBetter
	}
	switch {
	case r < 0.86:
		return models.VibeWorse
	case r < 0.94:
		return models.VibeBetter
	}
	return models.VibeNormal
}

func (g *Generator) pickTags(category string) []string {
	tags := []string{category}
	if g.rng.Float64() < 0.35 {
		tags = appendUnique(tags, g.pick(extraTags))
	}
	if g.rng.Float64() < 0.12 {
		tags = appendUnique(tags, g.pick(extraTags))
	}
	return tags
}

func appendUnique(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

func (g *Generator) envVersion(environment string, ts time.Time) string {
	channel := "desktop"
	if strings.Contains(environment, "Web") {
		channel = "web"
	} else if strings.Contains(environment, "API") {
		channel = "api"
	}
	return fmt.Sprintf("%s-%d.%d.%d", channel, ts.Year(), int(ts.Month()), g.intn(1, 28))
}

func (g *Generator) latencyFor(category, environment string) int {
	base := 800.0
	if environment == "ChatGPT Web" {
		base = 700
	}
	if environment == "Cursor IDE" {
		base = 900
	}
	if category == "Slowness" {
		base *= 1.8
	}
	ms := int(base*(0.6+g.rng.Float64()*1.2) + 0.5)
	if ms < 40 {
		ms = 40
	}
	return ms
}

// statusAndError emits rare explicit HTTP failures for flavor.
func (g *Generator) statusAndError(category string) (int, string) {
	if category == "Tool Use" && g.rng.Float64() < 0.04 {
		return 502, "TOOL_TIMEOUT"
	}
	if category == "RAG" && g.rng.Float64() < 0.03 {
		return 504, "VECTOR_BACKEND_TIMEOUT"
	}
	if g.rng.Float64() < 0.015 {
		return 500, "INTERNAL"
	}
	return 200, ""
}

func synthDetails(category, model, environment string) string {
	switch category {
	case "Context Memory":
		return fmt.Sprintf("%s in %s seems to forget earlier turns or file context.", model, environment)
	case "Hallucinations":
		return fmt.Sprintf("%s produced fabricated facts/citations in %s.", model, environment)
	case "Slowness":
		return fmt.Sprintf("%s feels slower than usual with %s.", environment, model)
	case "Refusals":
		return fmt.Sprintf("%s is refusing prompts it used to accept in %s.", model, environment)
	case "Tone":
		return fmt.Sprintf("%s tone/voice feels off or inconsistent in %s.", model, environment)
	case "Formatting":
		return fmt.Sprintf("%s returns broken or inconsistent formatting/markdown in %s.", model, environment)
	case "Tool Use":
		return fmt.Sprintf("%s calls tools poorly or ignores tool results in %s.", model, environment)
	case "RAG":
		return fmt.Sprintf("%s retrieval seems stale or misses obvious facts in %s.", model, environment)
	case "Localization":
		return fmt.Sprintf("%s outputs incorrect locale or mixed languages in %s.", model, environment)
	case "Safety":
		return fmt.Sprintf("%s safety guardrails behave oddly (over/under-blocking) in %s.", model, environment)
	default:
		return fmt.Sprintf("Observed %s with %s on %s.", category, model, environment)
	}
}
