// Package planning holds the pure planning heuristics: deadline offsets,
// dashboard statistics and the built-in ceremony templates.
package planning

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/weddingplan/planner-api/internal/core/domain"
)

// DateLayout is the wire format of every calendar date in the planner.
const DateLayout = "2006-01-02"

// DefaultLeadDays applies when no deadline rule matches.
const DefaultLeadDays = 7

type deadlineRule struct {
	keywords []string
	days     int
}

// deadlineRules is evaluated in order; the first rule with a keyword found in
// the item's category or name wins.
var deadlineRules = []deadlineRule{
	{keywords: []string{"nhà hàng", "tiệc", "địa điểm", "venue"}, days: 90},
	{keywords: []string{"chụp ảnh", "album", "pre-wedding", "photo"}, days: 60},
	{keywords: []string{"trang phục", "làm đẹp", "áo cưới", "váy", "vest", "makeup"}, days: 45},
	{keywords: []string{"nhẫn", "trang sức"}, days: 30},
	{keywords: []string{"thiệp", "in ấn"}, days: 30},
	{keywords: []string{"ban nhạc", "mc", "âm thanh"}, days: 21},
	{keywords: []string{"lễ vật", "mâm quả", "tráp", "sính lễ"}, days: 14},
	{keywords: []string{"hoa", "trang trí"}, days: 10},
	{keywords: []string{"xe", "di chuyển"}, days: 7},
}

// LeadDays returns how many days before the wedding an item with the given
// category and name is due. Input is compared in NFC, so decomposed
// Vietnamese text matches too.
func LeadDays(category, name string) int {
	haystack := norm.NFC.String(strings.ToLower(category + " " + name))
	for _, rule := range deadlineRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.days
			}
		}
	}
	return DefaultLeadDays
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return t, nil
}

// RecalculateDeadlines returns a copy of items where every item that is not
// done or paid gets a deadline derived from weddingDate. The input slice is
// not modified.
func RecalculateDeadlines(items []domain.BudgetItem, weddingDate string) ([]domain.BudgetItem, error) {
	wedding, err := ParseDate(weddingDate)
	if err != nil {
		return nil, err
	}

	out := make([]domain.BudgetItem, len(items))
	for i, item := range items {
		if !item.Status.Settled() {
			days := LeadDays(item.Category, item.Name)
			item.Deadline = wedding.AddDate(0, 0, -days).Format(DateLayout)
		}
		out[i] = item
	}
	return out, nil
}
