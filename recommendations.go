package main

import "sort"

// adviceKey identifies one harmful answer
type adviceKey struct {
	factor FactorID
	option string
}

type advice struct {
	text     string
	textEN   string
	priority Priority
}

// adviceTable holds mitigation advice for harmful answers. Harmful answers
// without an entry produce no recommendation.
var adviceTable = map[adviceKey]advice{
	{FactorSmoking, "heavy"}: {"立即戒烟！吸烟是导致死亡的最大单一可控因素，戒烟可以显著延长寿命。",
		"Quit smoking now. Smoking is the largest single controllable cause of death.", PriorityHigh},
	{FactorSmoking, "light"}: {"尽快戒烟。即使是轻度吸烟也会显著增加死亡风险。",
		"Quit as soon as possible. Even light smoking raises mortality significantly.", PriorityHigh},
	{FactorSmoking, "quit"}: {"继续保持不吸烟的状态。",
		"Stay smoke free.", PriorityMedium},
	{FactorAlcohol, "heavy"}: {"减少饮酒量，建议每周纯酒精摄入不超过100g，或考虑戒酒。",
		"Cut down to at most 100g of pure alcohol a week, or stop drinking.", PriorityHigh},
	{FactorAlcohol, "moderate"}: {"减少饮酒，每周酒精摄入建议不超过100g。",
		"Drink less: keep pure alcohol under 100g a week.", PriorityHigh},
	{FactorSleepTime, "early"}: {"调整睡眠时间，建议在22:00-24:00之间入睡最佳。",
		"Shift your bedtime to between 22:00 and 24:00.", PriorityHigh},
	{FactorSleepDuration, "ten"}: {"减少睡眠时间，每天7小时最优。过度睡眠可能是健康问题的信号。",
		"Sleep less; 7 hours is optimal. Oversleeping can signal a health problem.", PriorityMedium},
	{FactorSleepDuration, "nine"}: {"略微减少睡眠时间，7小时是最佳睡眠时长。",
		"Sleep slightly less; 7 hours is the optimal duration.", PriorityLow},
	{FactorSitting, "veryHigh"}: {"每小时起身活动，增加日常活动量。久坐每增加1小时，死亡风险增加3%。",
		"Stand up and move every hour. Each extra hour of sitting adds 3% mortality.", PriorityHigh},
	{FactorSitting, "high"}: {"减少久坐时间，建议每天久坐不超过6小时。",
		"Keep daily sitting under 6 hours.", PriorityMedium},
	{FactorSugaryDrinks, "multiple"}: {"戒除含糖饮料，改喝水、茶或咖啡。",
		"Drop sugary drinks; drink water, tea or coffee instead.", PriorityHigh},
	{FactorSugaryDrinks, "daily"}: {"减少含糖饮料摄入，每天多喝一杯就增加7%死亡风险。",
		"Cut sugary drinks; each daily glass adds 7% mortality.", PriorityMedium},
	{FactorUltraProcessed, "frequent"}: {"减少超加工食品摄入，多吃新鲜天然食物。",
		"Eat less ultra-processed food and more fresh whole food.", PriorityHigh},
	{FactorUltraProcessed, "regular"}: {"尽量避免超加工食品，选择天然食材。",
		"Avoid ultra-processed food where you can.", PriorityMedium},
	{FactorWeight, "obese"}: {"制定减重计划。从肥胖减至超重可降低54%死亡率。",
		"Plan to lose weight. Going from obese to overweight cuts mortality by 54%.", PriorityHigh},
	{FactorWeight, "overweight"}: {"适当减重至正常体重，可降低死亡风险。",
		"Lose weight towards the normal range to reduce risk.", PriorityMedium},
	{FactorEmotion, "pessimistic"}: {"寻求心理咨询，培养积极心态。悲观情绪显著增加死亡风险。",
		"Consider counselling and work on a positive outlook.", PriorityMedium},
	{FactorMeatType, "red"}: {"用白肉（鸡肉、鱼肉）替代红肉，可降低死亡风险。",
		"Replace red meat with white meat such as chicken or fish.", PriorityMedium},
	{FactorSleepTime, "late"}: {"调整作息，尽量在24:00前入睡，最佳入睡时间是22:00-24:00。",
		"Go to bed before midnight; 22:00 to 24:00 is best.", PriorityMedium},
	{FactorMetformin, "notTaking"}: {"糖尿病患者应咨询医生使用二甲双胍等药物控制病情。",
		"See a doctor about controlling diabetes with metformin or similar.", PriorityHigh},
	{FactorBetelNut, "regular"}: {"立即戒除槟榔！槟榔致癌风险极高，应完全避免。",
		"Stop chewing betel nut now; it is strongly carcinogenic.", PriorityHigh},
	{FactorBetelNut, "occasional"}: {"停止嚼槟榔，任何量的槟榔都会增加健康风险。",
		"Stop chewing betel nut; any amount raises risk.", PriorityHigh},
	{FactorBetelNut, "quit"}: {"继续保持不嚼槟榔。",
		"Stay off betel nut.", PriorityLow},
	{FactorCarbs, "veryLow"}: {"增加碳水摄入至45-55%。极低碳水饮食会增加死亡风险。",
		"Raise carbohydrates to 45-55% of energy; very low carb raises mortality.", PriorityHigh},
	{FactorCarbs, "high"}: {"减少碳水摄入，建议占比45-55%为最优。",
		"Reduce carbohydrates to 45-55% of energy.", PriorityMedium},
	{FactorProteinSource, "animalBased"}: {"增加植物蛋白摄入（豆类、坚果等），减少动物蛋白。",
		"Eat more plant protein (beans, nuts) and less animal protein.", PriorityLow},
}

// OpportunityRule fires when the user's impact for Factor has not reached Threshold
type OpportunityRule struct {
	Factor    FactorID
	Threshold int
	Inclusive bool // Adopted when value <= Threshold rather than < Threshold
	Gain      int
	Priority  Priority
	Advice    string
	AdviceEN  string
}

// Adopted reports whether an impact value already satisfies the rule
func (r OpportunityRule) Adopted(value int) bool {
	if r.Inclusive {
		return value <= r.Threshold
	}
	return value < r.Threshold
}

// opportunityRules lists beneficial behaviours in display order
var opportunityRules = []OpportunityRule{
	{FactorRacquetSports, 0, false, -47, PriorityHigh,
		"开始挥拍运动（网球、羽毛球、乒乓球），每周3次、每次45分钟可降低47%死亡率！",
		"Take up racquet sports (tennis, badminton, table tennis): 3 x 45 minutes a week cuts mortality by 47%."},
	{FactorDailySteps, -30, true, -50, PriorityHigh,
		"增加每日步数至8000步以上，可降低50%死亡率。",
		"Walk 8000+ steps a day to cut mortality by 50%."},
	{FactorSunlight, -20, true, -40, PriorityMedium,
		"增加户外活动，多晒太阳可降低40%死亡率。",
		"Spend more time outdoors; regular sunlight cuts mortality by 40%."},
	{FactorNuts, -10, false, -20, PriorityMedium,
		"每天吃一把坚果（核桃、杏仁等），可降低20%死亡率。",
		"Eat a handful of nuts (walnuts, almonds) daily to cut mortality by 20%."},
	{FactorCoffee, -10, false, -17, PriorityLow,
		"适量饮用咖啡（每天2-3.5杯），可降低17%死亡率。",
		"Drink 2-3.5 cups of coffee a day to cut mortality by 17%."},
	{FactorGlucosamine, -20, false, -39, PriorityMedium,
		"考虑补充葡萄糖胺（氨糖），研究显示可降低39%死亡率，与定期运动效果相当。",
		"Consider glucosamine; studies show 39% lower mortality, similar to regular exercise."},
	{FactorSpermidine, -30, false, -45, PriorityHigh,
		"多吃富含亚精胺的食物（纳豆、蘑菇、全谷物、苹果），可降低45%死亡率。",
		"Eat spermidine-rich food (natto, mushrooms, whole grains, apples) to cut mortality by 45%."},
	{FactorMultivitamin, 0, false, -8, PriorityLow,
		"考虑补充复合维生素，可降低8%癌症风险。",
		"Consider a multivitamin; it lowers cancer risk by 8%."},
	{FactorProteinSource, 0, false, -10, PriorityMedium,
		"增加植物蛋白摄入（豆类、坚果、种子），可降低10%死亡率。",
		"Eat more plant protein (beans, nuts, seeds) to cut mortality by 10%."},
}

// OpportunityRules returns a copy of the opportunity checklist
func OpportunityRules() []OpportunityRule {
	rules := make([]OpportunityRule, len(opportunityRules))
	copy(rules, opportunityRules)
	return rules
}

// GenerateRecommendations derives mitigation advice for harmful impacts
// (worst first) and the beneficial behaviours not yet adopted.
func GenerateRecommendations(impacts []Impact) ([]Recommendation, []Opportunity) {
	harmful := make([]Impact, 0)
	for _, i := range impacts {
		if i.IsHarmful() {
			harmful = append(harmful, i)
		}
	}
	sort.SliceStable(harmful, func(a, b int) bool {
		return harmful[a].Value > harmful[b].Value
	})

	negative := make([]Recommendation, 0, len(harmful))
	for _, i := range harmful {
		a, ok := adviceTable[adviceKey{i.Factor, i.Option}]
		if !ok {
			continue
		}
		negative = append(negative, Recommendation{
			Factor:        i.Factor,
			Option:        i.Option,
			Label:         i.Label,
			LabelEN:       i.LabelEN,
			Advice:        a.text,
			AdviceEN:      a.textEN,
			Priority:      a.priority,
			CurrentImpact: i.Value,
		})
	}

	byFactor := make(map[FactorID]int, len(impacts))
	seen := make(map[FactorID]bool, len(impacts))
	for _, i := range impacts {
		byFactor[i.Factor] = i.Value
		seen[i.Factor] = true
	}

	opportunities := make([]Opportunity, 0, len(opportunityRules))
	for _, r := range opportunityRules {
		if seen[r.Factor] && r.Adopted(byFactor[r.Factor]) {
			continue
		}
		opportunities = append(opportunities, Opportunity{
			Factor:        r.Factor,
			Advice:        r.Advice,
			AdviceEN:      r.AdviceEN,
			Priority:      r.Priority,
			PotentialGain: r.Gain,
		})
	}

	return negative, opportunities
}
