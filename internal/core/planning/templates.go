package planning

import "github.com/weddingplan/planner-api/internal/core/domain"

// DefaultProcedures returns a fresh copy of the built-in ceremony guide for
// every region. Callers own the returned slices.
func DefaultProcedures() map[domain.Region][]domain.ProcedureStep {
	out := make(map[domain.Region][]domain.ProcedureStep, len(seedProcedures))
	for region := range seedProcedures {
		out[region] = DefaultProceduresFor(region)
	}
	return out
}

// DefaultProceduresFor returns a fresh copy of the built-in steps of region,
// or nil for an unknown region.
func DefaultProceduresFor(region domain.Region) []domain.ProcedureStep {
	steps, ok := seedProcedures[region]
	if !ok {
		return nil
	}
	return CloneSteps(steps)
}

// CloneSteps deep-copies procedure steps.
func CloneSteps(steps []domain.ProcedureStep) []domain.ProcedureStep {
	if steps == nil {
		return nil
	}
	out := make([]domain.ProcedureStep, len(steps))
	for i, s := range steps {
		s.Offerings = append([]string(nil), s.Offerings...)
		s.Tasks = append([]domain.TaskTemplate(nil), s.Tasks...)
		s.Tips = append([]string(nil), s.Tips...)
		s.Taboos = append([]string(nil), s.Taboos...)
		s.Images = append([]string(nil), s.Images...)
		out[i] = s
	}
	return out
}

// TasksToBudgetItems turns the task templates of a step into pending budget
// items shared by both sides. newID supplies item identifiers.
func TasksToBudgetItems(step domain.ProcedureStep, newID func() string) []domain.BudgetItem {
	items := make([]domain.BudgetItem, 0, len(step.Tasks))
	for _, t := range step.Tasks {
		items = append(items, domain.BudgetItem{
			ID:            newID(),
			Category:      t.Category,
			Name:          t.Name,
			Side:          domain.SideBoth,
			Status:        domain.BudgetPending,
			EstimatedCost: t.EstimatedCost,
			Note:          step.Title,
		})
	}
	return items
}

var seedProcedures = map[domain.Region][]domain.ProcedureStep{
	domain.RegionNorth: {
		{
			ID:          "north-dam-ngo",
			Title:       "Lễ Dạm Ngõ",
			Description: "Nhà trai sang thăm nhà gái để chính thức đặt vấn đề.",
			Offerings:   []string{"Trầu cau", "Chè", "Rượu"},
			Tasks: []domain.TaskTemplate{
				{Category: "Lễ Vật", Name: "Chuẩn bị trầu cau dạm ngõ", EstimatedCost: 1_000_000},
			},
			Tips: []string{"Chỉ nên đi 5-7 người thân thiết."},
		},
		{
			ID:          "north-an-hoi",
			Title:       "Lễ Ăn Hỏi",
			Description: "Nhà trai mang tráp lễ sang nhà gái.",
			Offerings:   []string{"Tráp trầu cau", "Tráp bánh cốm", "Tráp hoa quả"},
			Tasks: []domain.TaskTemplate{
				{Category: "Lễ Vật", Name: "Đặt tráp ăn hỏi", EstimatedCost: 8_000_000},
				{Category: "Trang Phục & Làm Đẹp", Name: "Thuê áo dài bê tráp", EstimatedCost: 3_000_000},
			},
			Taboos: []string{"Số tráp phải là số lẻ."},
		},
		{
			ID:          "north-ruoc-dau",
			Title:       "Lễ Rước Dâu",
			Description: "Nhà trai đón cô dâu về nhà chồng.",
			Tasks: []domain.TaskTemplate{
				{Category: "Di Chuyển", Name: "Thuê xe hoa", EstimatedCost: 5_000_000},
				{Category: "Hoa & Trang Trí", Name: "Hoa cưới cầm tay", EstimatedCost: 1_500_000},
			},
		},
	},
	domain.RegionCentral: {
		{
			ID:          "central-dam-hoi",
			Title:       "Lễ Dạm Hỏi",
			Description: "Hai gia đình gặp mặt, gộp dạm ngõ và ăn hỏi.",
			Offerings:   []string{"Trầu cau", "Rượu", "Bánh phu thê"},
			Tasks: []domain.TaskTemplate{
				{Category: "Lễ Vật", Name: "Mâm quả dạm hỏi", EstimatedCost: 5_000_000},
			},
		},
		{
			ID:          "central-le-cuoi",
			Title:       "Lễ Cưới",
			Description: "Lễ rước dâu và tiệc cưới tại nhà.",
			Tasks: []domain.TaskTemplate{
				{Category: "Nhà Hàng & Tiệc", Name: "Đặt tiệc tại gia", EstimatedCost: 60_000_000},
			},
			Tips: []string{"Nghi lễ thường giản dị, trọng lễ gia tiên."},
		},
	},
	domain.RegionSouth: {
		{
			ID:          "south-dam-ngo",
			Title:       "Lễ Dạm Ngõ",
			Description: "Nhà trai đến nhà gái xin phép cho đôi trẻ tìm hiểu.",
			Tasks: []domain.TaskTemplate{
				{Category: "Lễ Vật", Name: "Mâm trầu rượu", EstimatedCost: 1_000_000},
			},
		},
		{
			ID:          "south-dam-cuoi",
			Title:       "Lễ Đám Cưới",
			Description: "Lễ rước dâu, lễ gia tiên và tiệc cưới ở nhà hàng.",
			Offerings:   []string{"Mâm quả", "Đôi đèn long phụng"},
			Tasks: []domain.TaskTemplate{
				{Category: "Nhà Hàng & Tiệc", Name: "Đặt nhà hàng tiệc cưới", EstimatedCost: 150_000_000},
				{Category: "Chụp Ảnh", Name: "Chụp ảnh cưới", EstimatedCost: 20_000_000},
				{Category: "Trang Phục & Làm Đẹp", Name: "Váy cưới và trang điểm", EstimatedCost: 15_000_000},
			},
		},
	},
}
