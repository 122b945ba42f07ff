package main

import "fmt"

// FactorID is the stable key of a lifestyle factor (matches the profile field name)
type FactorID string

const (
	FactorMeatType        FactorID = "meatType"
	FactorVegetableFruit  FactorID = "vegetableFruit"
	FactorChili           FactorID = "chili"
	FactorNuts            FactorID = "nuts"
	FactorUltraProcessed  FactorID = "ultraProcessed"
	FactorCoffee          FactorID = "coffee"
	FactorMilk            FactorID = "milk"
	FactorTea             FactorID = "tea"
	FactorSugaryDrinks    FactorID = "sugaryDrinks"
	FactorAlcohol         FactorID = "alcohol"
	FactorSmoking         FactorID = "smoking"
	FactorSunlight        FactorID = "sunlight"
	FactorMetformin       FactorID = "metformin"
	FactorMultivitamin    FactorID = "multivitamin"
	FactorGlucosamine     FactorID = "glucosamine"
	FactorSpermidine      FactorID = "spermidine"
	FactorRacquetSports   FactorID = "racquetSports"
	FactorIntenseExercise FactorID = "intenseExercise"
	FactorHousework       FactorID = "housework"
	FactorDailySteps      FactorID = "dailySteps"
	FactorBrushTeeth      FactorID = "brushTeeth"
	FactorBathing         FactorID = "bathing"
	FactorSleepDuration   FactorID = "sleepDuration"
	FactorSleepTime       FactorID = "sleepTime"
	FactorSitting         FactorID = "sitting"
	FactorEmotion         FactorID = "emotion"
	FactorWeight          FactorID = "weight"
	FactorBetelNut        FactorID = "betelNut"
	FactorCarbs           FactorID = "carbs"
	FactorProteinSource   FactorID = "proteinSource"
)

// FactorOption is one selectable answer and its ACM impact
type FactorOption struct {
	ID      string `json:"id"`
	Value   int    `json:"value"`
	Label   string `json:"label"`
	LabelEN string `json:"label_en"`
}

// Factor is a lifestyle question with its enumerated answers
type Factor struct {
	ID              FactorID       `json:"id"`
	Name            string         `json:"name"`
	NameEN          string         `json:"name_en"`
	Category        CategoryTag    `json:"category"`
	Options         []FactorOption `json:"options"`
	DefaultOptionID string         `json:"default_option"` // Zero-impact answer
}

// Option returns the option with the given ID
func (f *Factor) Option(id string) (FactorOption, bool) {
	for _, o := range f.Options {
		if o.ID == id {
			return o, true
		}
	}
	return FactorOption{}, false
}

// OptionIDs lists the allowed answers in declaration order
func (f *Factor) OptionIDs() []string {
	ids := make([]string, len(f.Options))
	for i, o := range f.Options {
		ids[i] = o.ID
	}
	return ids
}

// BestOption returns the most protective answer (first one on ties)
func (f *Factor) BestOption() FactorOption {
	best := f.Options[0]
	for _, o := range f.Options[1:] {
		if o.Value < best.Value {
			best = o
		}
	}
	return best
}

// WorstOption returns the most harmful answer (first one on ties)
func (f *Factor) WorstOption() FactorOption {
	worst := f.Options[0]
	for _, o := range f.Options[1:] {
		if o.Value > worst.Value {
			worst = o
		}
	}
	return worst
}

// FactorRegistry holds the static factor table
type FactorRegistry struct {
	factors map[FactorID]*Factor
	order   []FactorID // Determines questionnaire and impact order
}

// NewFactorRegistry creates a registry with all lifestyle factors
func NewFactorRegistry() *FactorRegistry {
	r := &FactorRegistry{
		factors: make(map[FactorID]*Factor),
		order:   make([]FactorID, 0, 30),
	}

	// Diet - solid
	r.Register(&Factor{
		ID: FactorMeatType, Name: "肉类类型", NameEN: "Meat type", Category: CategoryDietSolid,
		Options: []FactorOption{
			{ID: "white", Value: -7, Label: "白肉摄入", LabelEN: "Mostly white meat"},
			{ID: "mixed", Value: 0, Label: "混合肉类", LabelEN: "Mixed meat"},
			{ID: "red", Value: 7, Label: "红肉摄入", LabelEN: "Mostly red meat"},
		},
		DefaultOptionID: "mixed",
	})
	r.Register(&Factor{
		ID: FactorVegetableFruit, Name: "蔬果摄入", NameEN: "Vegetables and fruit", Category: CategoryDietSolid,
		Options: []FactorOption{
			{ID: "high", Value: -21, Label: "蔬果摄入充足", LabelEN: "Plenty of vegetables and fruit"},
			{ID: "medium", Value: -10, Label: "蔬果摄入中等", LabelEN: "Some vegetables and fruit"},
			{ID: "low", Value: 0, Label: "蔬果摄入不足", LabelEN: "Little vegetables and fruit"},
		},
		DefaultOptionID: "low",
	})
	r.Register(&Factor{
		ID: FactorChili, Name: "吃辣频率", NameEN: "Spicy food", Category: CategoryDietSolid,
		Options: []FactorOption{
			{ID: "regular", Value: -23, Label: "经常吃辣", LabelEN: "Spicy food regularly"},
			{ID: "sometimes", Value: -10, Label: "偶尔吃辣", LabelEN: "Spicy food sometimes"},
			{ID: "never", Value: 0, Label: "不吃辣", LabelEN: "No spicy food"},
		},
		DefaultOptionID: "never",
	})
	r.Register(&Factor{
		ID: FactorNuts, Name: "坚果摄入", NameEN: "Nuts", Category: CategoryDietSolid,
		Options: []FactorOption{
			{ID: "daily", Value: -20, Label: "每日坚果", LabelEN: "Nuts daily"},
			{ID: "weekly", Value: -15, Label: "每周坚果", LabelEN: "Nuts weekly"},
			{ID: "occasionally", Value: -7, Label: "偶尔坚果", LabelEN: "Nuts occasionally"},
			{ID: "never", Value: 0, Label: "不吃坚果", LabelEN: "No nuts"},
		},
		DefaultOptionID: "never",
	})
	r.Register(&Factor{
		ID: FactorUltraProcessed, Name: "超加工食品", NameEN: "Ultra-processed food", Category: CategoryDietSolid,
		Options: []FactorOption{
			{ID: "rare", Value: -40, Label: "很少吃加工食品", LabelEN: "Rarely ultra-processed food"},
			{ID: "sometimes", Value: -20, Label: "偶尔吃加工食品", LabelEN: "Ultra-processed food sometimes"},
			{ID: "regular", Value: 0, Label: "经常吃加工食品", LabelEN: "Ultra-processed food regularly"},
			{ID: "frequent", Value: 25, Label: "频繁吃加工食品", LabelEN: "Ultra-processed food frequently"},
		},
		DefaultOptionID: "regular",
	})

	// Diet - liquid
	r.Register(&Factor{
		ID: FactorCoffee, Name: "咖啡", NameEN: "Coffee", Category: CategoryDietLiquid,
		Options: []FactorOption{
			{ID: "optimal", Value: -17, Label: "最优咖啡摄入", LabelEN: "Optimal coffee (2-3.5 cups)"},
			{ID: "moderate", Value: -10, Label: "适量咖啡", LabelEN: "Moderate coffee"},
			{ID: "light", Value: -5, Label: "少量咖啡", LabelEN: "Light coffee"},
			{ID: "none", Value: 0, Label: "不喝咖啡", LabelEN: "No coffee"},
		},
		DefaultOptionID: "none",
	})
	r.Register(&Factor{
		ID: FactorMilk, Name: "牛奶", NameEN: "Milk", Category: CategoryDietLiquid,
		Options: []FactorOption{
			{ID: "high", Value: -17, Label: "充足牛奶", LabelEN: "Plenty of milk"},
			{ID: "medium", Value: -10, Label: "适量牛奶", LabelEN: "Moderate milk"},
			{ID: "low", Value: -5, Label: "少量牛奶", LabelEN: "A little milk"},
			{ID: "none", Value: 0, Label: "不喝牛奶", LabelEN: "No milk"},
		},
		DefaultOptionID: "none",
	})
	r.Register(&Factor{
		ID: FactorTea, Name: "饮茶", NameEN: "Tea", Category: CategoryDietLiquid,
		Options: []FactorOption{
			{ID: "daily", Value: -12, Label: "每日饮茶", LabelEN: "Tea daily"},
			{ID: "regular", Value: -8, Label: "经常饮茶", LabelEN: "Tea regularly"},
			{ID: "occasionally", Value: -4, Label: "偶尔饮茶", LabelEN: "Tea occasionally"},
			{ID: "never", Value: 0, Label: "不喝茶", LabelEN: "No tea"},
		},
		DefaultOptionID: "never",
	})
	r.Register(&Factor{
		ID: FactorSugaryDrinks, Name: "含糖饮料", NameEN: "Sugary drinks", Category: CategoryDietLiquid,
		Options: []FactorOption{
			{ID: "none", Value: 0, Label: "不喝含糖饮料", LabelEN: "No sugary drinks"},
			{ID: "rare", Value: 3, Label: "偶尔含糖饮料", LabelEN: "Sugary drinks rarely"},
			{ID: "daily", Value: 7, Label: "每日含糖饮料", LabelEN: "Sugary drink daily"},
			{ID: "multiple", Value: 21, Label: "大量含糖饮料", LabelEN: "Many sugary drinks"},
		},
		DefaultOptionID: "none",
	})
	r.Register(&Factor{
		ID: FactorAlcohol, Name: "饮酒", NameEN: "Alcohol", Category: CategoryDietLiquid,
		Options: []FactorOption{
			{ID: "none", Value: 0, Label: "不饮酒", LabelEN: "No alcohol"},
			{ID: "light", Value: 10, Label: "少量饮酒", LabelEN: "Light drinking"},
			{ID: "moderate", Value: 30, Label: "中等饮酒", LabelEN: "Moderate drinking"},
			{ID: "heavy", Value: 50, Label: "大量饮酒", LabelEN: "Heavy drinking"},
		},
		DefaultOptionID: "none",
	})

	// Smoking and sunlight
	r.Register(&Factor{
		ID: FactorSmoking, Name: "吸烟", NameEN: "Smoking", Category: CategoryLightAndSubstances,
		Options: []FactorOption{
			{ID: "never", Value: 0, Label: "从不吸烟", LabelEN: "Never smoked"},
			{ID: "quit", Value: 10, Label: "已戒烟", LabelEN: "Quit smoking"},
			{ID: "light", Value: 17, Label: "轻度吸烟", LabelEN: "Light smoker"},
			{ID: "heavy", Value: 54, Label: "重度吸烟", LabelEN: "Heavy smoker"},
		},
		DefaultOptionID: "never",
	})
	r.Register(&Factor{
		ID: FactorSunlight, Name: "晒太阳", NameEN: "Sunlight", Category: CategoryLightAndSubstances,
		Options: []FactorOption{
			{ID: "regular", Value: -40, Label: "经常晒太阳", LabelEN: "Regular sunlight"},
			{ID: "sometimes", Value: -20, Label: "偶尔晒太阳", LabelEN: "Some sunlight"},
			{ID: "rare", Value: 0, Label: "很少晒太阳", LabelEN: "Rarely in the sun"},
		},
		DefaultOptionID: "rare",
	})

	// Medication and supplements
	r.Register(&Factor{
		ID: FactorMetformin, Name: "二甲双胍", NameEN: "Metformin", Category: CategorySupplements,
		Options: []FactorOption{
			{ID: "notApplicable", Value: 0, Label: "二甲双胍-不适用", LabelEN: "Metformin not applicable"},
			{ID: "taking", Value: -15, Label: "服用二甲双胍", LabelEN: "Taking metformin"},
			{ID: "notTaking", Value: 20, Label: "糖尿病未控制", LabelEN: "Uncontrolled diabetes"},
		},
		DefaultOptionID: "notApplicable",
	})
	r.Register(&Factor{
		ID: FactorMultivitamin, Name: "复合维生素", NameEN: "Multivitamin", Category: CategorySupplements,
		Options: []FactorOption{
			{ID: "regular", Value: -8, Label: "定期服用维生素", LabelEN: "Multivitamin regularly"},
			{ID: "sometimes", Value: -4, Label: "偶尔服用维生素", LabelEN: "Multivitamin sometimes"},
			{ID: "never", Value: 0, Label: "不服用维生素", LabelEN: "No multivitamin"},
		},
		DefaultOptionID: "never",
	})
	r.Register(&Factor{
		ID: FactorGlucosamine, Name: "氨糖", NameEN: "Glucosamine", Category: CategorySupplements,
		Options: []FactorOption{
			{ID: "regular", Value: -39, Label: "定期服用氨糖", LabelEN: "Glucosamine regularly"},
			{ID: "sometimes", Value: -20, Label: "偶尔服用氨糖", LabelEN: "Glucosamine sometimes"},
			{ID: "never", Value: 0, Label: "不服用氨糖", LabelEN: "No glucosamine"},
		},
		DefaultOptionID: "never",
	})
	r.Register(&Factor{
		ID: FactorSpermidine, Name: "亚精胺", NameEN: "Spermidine", Category: CategorySupplements,
		Options: []FactorOption{
			{ID: "high", Value: -45, Label: "高亚精胺摄入", LabelEN: "High spermidine intake"},
			{ID: "medium", Value: -30, Label: "中等亚精胺摄入", LabelEN: "Medium spermidine intake"},
			{ID: "low", Value: -15, Label: "低亚精胺摄入", LabelEN: "Low spermidine intake"},
			{ID: "veryLow", Value: 0, Label: "很少亚精胺", LabelEN: "Very little spermidine"},
		},
		DefaultOptionID: "veryLow",
	})

	// Exercise and routine
	r.Register(&Factor{
		ID: FactorRacquetSports, Name: "挥拍运动", NameEN: "Racquet sports", Category: CategoryExerciseAndRoutine,
		Options: []FactorOption{
			{ID: "regular", Value: -47, Label: "规律挥拍运动", LabelEN: "Racquet sports regularly"},
			{ID: "sometimes", Value: -25, Label: "偶尔挥拍运动", LabelEN: "Racquet sports sometimes"},
			{ID: "rare", Value: -10, Label: "很少挥拍运动", LabelEN: "Racquet sports rarely"},
			{ID: "never", Value: 0, Label: "不做挥拍运动", LabelEN: "No racquet sports"},
		},
		DefaultOptionID: "never",
	})
	r.Register(&Factor{
		ID: FactorIntenseExercise, Name: "剧烈运动", NameEN: "Intense exercise", Category: CategoryExerciseAndRoutine,
		Options: []FactorOption{
			{ID: "high", Value: -40, Label: "高强度运动", LabelEN: "High intensity exercise"},
			{ID: "medium", Value: -25, Label: "中等强度运动", LabelEN: "Medium intensity exercise"},
			{ID: "low", Value: -10, Label: "低强度运动", LabelEN: "Low intensity exercise"},
			{ID: "none", Value: 0, Label: "不做剧烈运动", LabelEN: "No intense exercise"},
		},
		DefaultOptionID: "none",
	})
	r.Register(&Factor{
		ID: FactorHousework, Name: "做家务", NameEN: "Housework", Category: CategoryExerciseAndRoutine,
		Options: []FactorOption{
			{ID: "notApplicable", Value: 0, Label: "做家务-不适用", LabelEN: "Housework not applicable"},
			{ID: "heavy", Value: -29, Label: "经常做重型家务", LabelEN: "Heavy housework often"},
			{ID: "light", Value: -15, Label: "做轻型家务", LabelEN: "Light housework"},
			{ID: "rare", Value: 0, Label: "很少做家务", LabelEN: "Rarely does housework"},
		},
		DefaultOptionID: "notApplicable",
	})
	r.Register(&Factor{
		ID: FactorDailySteps, Name: "每日步数", NameEN: "Daily steps", Category: CategoryExerciseAndRoutine,
		Options: []FactorOption{
			{ID: "high", Value: -50, Label: "每日步数充足", LabelEN: "8000+ steps a day"},
			{ID: "medium", Value: -30, Label: "每日步数中等", LabelEN: "Moderate daily steps"},
			{ID: "low", Value: -15, Label: "每日步数较少", LabelEN: "Few daily steps"},
			{ID: "veryLow", Value: 0, Label: "每日步数很少", LabelEN: "Very few daily steps"},
		},
		DefaultOptionID: "veryLow",
	})
	r.Register(&Factor{
		ID: FactorBrushTeeth, Name: "刷牙", NameEN: "Tooth brushing", Category: CategoryExerciseAndRoutine,
		Options: []FactorOption{
			{ID: "twice", Value: -25, Label: "规律刷牙", LabelEN: "Brushes twice a day"},
			{ID: "once", Value: -12, Label: "每日刷牙一次", LabelEN: "Brushes once a day"},
			{ID: "irregular", Value: 0, Label: "不规律刷牙", LabelEN: "Irregular brushing"},
		},
		DefaultOptionID: "irregular",
	})
	r.Register(&Factor{
		ID: FactorBathing, Name: "泡澡", NameEN: "Bathing", Category: CategoryExerciseAndRoutine,
		Options: []FactorOption{
			{ID: "daily", Value: -28, Label: "每日泡澡", LabelEN: "Hot bath daily"},
			{ID: "regular", Value: -15, Label: "经常泡澡", LabelEN: "Hot bath regularly"},
			{ID: "sometimes", Value: -7, Label: "偶尔泡澡", LabelEN: "Hot bath sometimes"},
			{ID: "rare", Value: 0, Label: "很少泡澡", LabelEN: "Rarely bathes"},
		},
		DefaultOptionID: "rare",
	})

	// Sleep
	r.Register(&Factor{
		ID: FactorSleepDuration, Name: "睡眠时长", NameEN: "Sleep duration", Category: CategorySleepAndSitting,
		Options: []FactorOption{
			{ID: "optimal", Value: 0, Label: "最优睡眠时长", LabelEN: "Optimal sleep (7h)"},
			{ID: "six", Value: 7, Label: "睡眠6小时", LabelEN: "6 hours sleep"},
			{ID: "eight", Value: 5, Label: "睡眠8小时", LabelEN: "8 hours sleep"},
			{ID: "nine", Value: 15, Label: "睡眠9小时", LabelEN: "9 hours sleep"},
			{ID: "ten", Value: 34, Label: "睡眠≥10小时", LabelEN: "10+ hours sleep"},
		},
		DefaultOptionID: "optimal",
	})
	r.Register(&Factor{
		ID: FactorSleepTime, Name: "入睡时间", NameEN: "Bedtime", Category: CategorySleepAndSitting,
		Options: []FactorOption{
			{ID: "optimal", Value: 0, Label: "最优入睡时间", LabelEN: "Bedtime 22:00-24:00"},
			{ID: "late", Value: 15, Label: "晚睡", LabelEN: "Late bedtime"},
			{ID: "early", Value: 43, Label: "过早睡", LabelEN: "Very early bedtime"},
		},
		DefaultOptionID: "optimal",
	})
	r.Register(&Factor{
		ID: FactorSitting, Name: "久坐时间", NameEN: "Sitting time", Category: CategorySleepAndSitting,
		Options: []FactorOption{
			{ID: "low", Value: 0, Label: "久坐时间少", LabelEN: "Little sitting"},
			{ID: "medium", Value: 5, Label: "中等久坐", LabelEN: "Moderate sitting"},
			{ID: "high", Value: 15, Label: "久坐时间长", LabelEN: "Long sitting"},
			{ID: "veryHigh", Value: 25, Label: "久坐时间很长", LabelEN: "Very long sitting"},
		},
		DefaultOptionID: "low",
	})

	// Psychology and weight
	r.Register(&Factor{
		ID: FactorEmotion, Name: "情绪", NameEN: "Outlook", Category: CategoryPsychologyAndWeight,
		Options: []FactorOption{
			{ID: "optimistic", Value: 0, Label: "乐观情绪", LabelEN: "Optimistic"},
			{ID: "neutral", Value: 5, Label: "中性情绪", LabelEN: "Neutral outlook"},
			{ID: "pessimistic", Value: 13, Label: "悲观情绪", LabelEN: "Pessimistic"},
		},
		DefaultOptionID: "optimistic",
	})
	r.Register(&Factor{
		ID: FactorWeight, Name: "体重", NameEN: "Body weight", Category: CategoryPsychologyAndWeight,
		Options: []FactorOption{
			{ID: "normal", Value: 0, Label: "正常体重", LabelEN: "Normal weight"},
			{ID: "overweight", Value: 10, Label: "超重", LabelEN: "Overweight"},
			{ID: "obese", Value: 25, Label: "肥胖", LabelEN: "Obese"},
			{ID: "lostWeight", Value: -54, Label: "成功减重", LabelEN: "Lost weight successfully"},
		},
		DefaultOptionID: "normal",
	})

	// Other habits
	r.Register(&Factor{
		ID: FactorBetelNut, Name: "槟榔", NameEN: "Betel nut", Category: CategoryLightAndSubstances,
		Options: []FactorOption{
			{ID: "never", Value: 0, Label: "不嚼槟榔", LabelEN: "Never chews betel nut"},
			{ID: "quit", Value: 10, Label: "已戒槟榔", LabelEN: "Quit betel nut"},
			{ID: "occasional", Value: 15, Label: "偶尔嚼槟榔", LabelEN: "Betel nut occasionally"},
			{ID: "regular", Value: 21, Label: "经常嚼槟榔", LabelEN: "Betel nut regularly"},
		},
		DefaultOptionID: "never",
	})
	r.Register(&Factor{
		ID: FactorCarbs, Name: "碳水化合物", NameEN: "Carbohydrates", Category: CategoryDietSolid,
		Options: []FactorOption{
			{ID: "veryLow", Value: 20, Label: "极低碳水", LabelEN: "Very low carb"},
			{ID: "low", Value: 8, Label: "低碳水", LabelEN: "Low carb"},
			{ID: "optimal", Value: 0, Label: "最优碳水", LabelEN: "Optimal carbs (45-55%)"},
			{ID: "medium", Value: 3, Label: "中等碳水", LabelEN: "Medium-high carb"},
			{ID: "high", Value: 7, Label: "高碳水", LabelEN: "High carb"},
		},
		DefaultOptionID: "optimal",
	})
	r.Register(&Factor{
		ID: FactorProteinSource, Name: "蛋白质来源", NameEN: "Protein source", Category: CategoryDietSolid,
		Options: []FactorOption{
			{ID: "plantBased", Value: -10, Label: "植物蛋白为主", LabelEN: "Mostly plant protein"},
			{ID: "mixed", Value: 0, Label: "混合蛋白", LabelEN: "Mixed protein"},
			{ID: "animalBased", Value: 5, Label: "动物蛋白为主", LabelEN: "Mostly animal protein"},
		},
		DefaultOptionID: "mixed",
	})

	return r
}

// Register adds a factor to the registry
func (r *FactorRegistry) Register(f *Factor) {
	if _, exists := r.factors[f.ID]; !exists {
		r.order = append(r.order, f.ID)
	}
	r.factors[f.ID] = f
}

// Get returns a factor by ID
func (r *FactorRegistry) Get(id FactorID) *Factor {
	return r.factors[id]
}

// GetAll returns all factors in registration order
func (r *FactorRegistry) GetAll() []*Factor {
	result := make([]*Factor, len(r.order))
	for i, id := range r.order {
		result[i] = r.factors[id]
	}
	return result
}

// Len returns the number of registered factors
func (r *FactorRegistry) Len() int {
	return len(r.order)
}

// Lookup resolves one answer into an Impact
func (r *FactorRegistry) Lookup(id FactorID, optionID string) (Impact, error) {
	f := r.factors[id]
	if f == nil {
		return Impact{}, ValidationError{Field: string(id), Message: fmt.Sprintf("unknown factor %q", id)}
	}
	o, ok := f.Option(optionID)
	if !ok {
		return Impact{}, ValidationError{
			Field:   string(id),
			Message: fmt.Sprintf("invalid option %q for %s (allowed: %v)", optionID, id, f.OptionIDs()),
		}
	}
	return Impact{
		Factor:   f.ID,
		Option:   o.ID,
		Value:    o.Value,
		Label:    o.Label,
		LabelEN:  o.LabelEN,
		Category: f.Category,
	}, nil
}

// ResolveImpacts produces one Impact per registered factor, in registration order.
// A missing or unknown answer fails with a ValidationError naming the factor;
// answers for unregistered factors are rejected too.
func (r *FactorRegistry) ResolveImpacts(answers map[string]string) ([]Impact, error) {
	impacts := make([]Impact, 0, len(r.order))
	for _, id := range r.order {
		optionID, ok := answers[string(id)]
		if !ok || optionID == "" {
			return nil, ValidationError{Field: string(id), Message: fmt.Sprintf("missing answer for %s", id)}
		}
		impact, err := r.Lookup(id, optionID)
		if err != nil {
			return nil, err
		}
		impacts = append(impacts, impact)
	}
	if len(answers) > len(r.order) {
		for key := range answers {
			if r.factors[FactorID(key)] == nil {
				return nil, ValidationError{Field: key, Message: fmt.Sprintf("unknown factor %q", key)}
			}
		}
	}
	return impacts, nil
}

// DefaultAnswers returns the zero-impact answer for every factor
func (r *FactorRegistry) DefaultAnswers() map[string]string {
	answers := make(map[string]string, len(r.order))
	for _, f := range r.GetAll() {
		answers[string(f.ID)] = f.DefaultOptionID
	}
	return answers
}

// BestAnswers returns the most protective answer for every factor
func (r *FactorRegistry) BestAnswers() map[string]string {
	answers := make(map[string]string, len(r.order))
	for _, f := range r.GetAll() {
		answers[string(f.ID)] = f.BestOption().ID
	}
	return answers
}

// WorstAnswers returns the most harmful answer for every factor
func (r *FactorRegistry) WorstAnswers() map[string]string {
	answers := make(map[string]string, len(r.order))
	for _, f := range r.GetAll() {
		answers[string(f.ID)] = f.WorstOption().ID
	}
	return answers
}
