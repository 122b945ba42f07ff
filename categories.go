package main

import "sort"

// GetCategoryStats groups impacts by category, most beneficial category first.
// Categories with no impacts are omitted.
func GetCategoryStats(impacts []Impact) []CategoryStat {
	stats := make(map[CategoryTag]*CategoryStat)
	for _, i := range impacts {
		s, ok := stats[i.Category]
		if !ok {
			s = &CategoryStat{Category: i.Category, Name: i.Category.Name(), Factors: []Impact{}}
			stats[i.Category] = s
		}
		s.TotalACM += i.Value
		s.Count++
		if i.Value != 0 {
			s.Factors = append(s.Factors, i)
		}
	}

	result := make([]CategoryStat, 0, len(stats))
	for _, c := range AllCategories() {
		if s, ok := stats[c]; ok {
			result = append(result, *s)
		}
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].TotalACM < result[b].TotalACM
	})
	return result
}

// SignificantImpacts returns up to n non-zero impacts, most beneficial first.
// n <= 0 returns all of them.
func SignificantImpacts(impacts []Impact, n int) []Impact {
	result := make([]Impact, 0, len(impacts))
	for _, i := range impacts {
		if i.Value != 0 {
			result = append(result, i)
		}
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Value < result[b].Value
	})
	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}
