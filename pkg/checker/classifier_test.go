package checker

import (
	"testing"
	"time"
)

// row builds a result-table row in the canonical cell layout: the IMEI
// sits in cell 2, model/color/inDate/outDate/activationDate in cells 3-7.
func row(imei, model, color, inDate, outDate, activationDate string) []string {
	return []string{"1", "店铺A", imei, model, color, inDate, outDate, activationDate}
}

func daysAgo(now time.Time, n int) string {
	return now.AddDate(0, 0, -n).Format("2006-01-02")
}

func TestClassifyNotFound(t *testing.T) {
	now := time.Now()
	result := Classify("222222222222222", nil, now)

	if result.Category != CategoryNotExist {
		t.Errorf("期望 category 为 not-exist，实际 %s", result.Category)
	}
	if result.Model != "not exists" {
		t.Errorf("期望 model 为 not exists，实际 %q", result.Model)
	}
	if result.ActivationDate != "-" {
		t.Errorf("期望 activationDate 为 -，实际 %q", result.ActivationDate)
	}
}

func TestClassifyNotExistOverride(t *testing.T) {
	now := time.Now()
	imei := "111111111111111"

	tests := []struct {
		name string
		row  []string
	}{
		{"model 为占位符", row(imei, "-", "Black", "2024-01-01", "2024-02-01", daysAgo(now, 5))},
		{"model 标记不存在", row(imei, "Device Not Exist", "-", "-", "-", "-")},
		{"三个日期均为空", row(imei, "Galaxy A16", "Black", "-", "-", "-")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(imei, [][]string{tt.row}, now)
			if result.Category != CategoryNotExist {
				t.Errorf("存在覆盖规则应判定 not-exist，实际 %s", result.Category)
			}
			if result.Status != StatusNotExist {
				t.Errorf("期望 status %q，实际 %q", StatusNotExist, result.Status)
			}
			if result.Model != "not exists" {
				t.Errorf("期望 model 被强制为 not exists，实际 %q", result.Model)
			}
		})
	}
}

func TestClassifyNotActive(t *testing.T) {
	now := time.Now()
	imei := "111111111111111"

	for _, activation := range []string{"-", "n/a", "N/A"} {
		result := Classify(imei, [][]string{row(imei, "Galaxy A16", "Black", "2024-01-01", "2024-02-01", activation)}, now)
		if result.Category != CategoryNotActive {
			t.Errorf("activationDate=%q 应判定 not-active，实际 %s", activation, result.Category)
		}
		if result.Model != "Galaxy A16" {
			t.Errorf("not-active 应保留行内 model，实际 %q", result.Model)
		}
	}
}

func TestClassifyDayBuckets(t *testing.T) {
	now := time.Now()
	imei := "111111111111111"

	tests := []struct {
		days     int
		category Category
		status   string
	}{
		{0, CategoryActive2Days, StatusActive2Days},
		{2, CategoryActive2Days, StatusActive2Days},
		{3, CategoryActive3To15, StatusActive3To15},
		{10, CategoryActive3To15, StatusActive3To15},
		{15, CategoryActive3To15, StatusActive3To15},
		{16, CategoryActiveMore15, StatusExpired},
		{100, CategoryActiveMore15, StatusExpired},
	}

	for _, tt := range tests {
		rows := [][]string{row(imei, "Galaxy A16", "Black", "2024-01-01", "2024-02-01", daysAgo(now, tt.days))}
		result := Classify(imei, rows, now)

		if result.Category != tt.category {
			t.Errorf("激活 %d 天期望 category %s，实际 %s", tt.days, tt.category, result.Category)
		}
		if result.Status != tt.status {
			t.Errorf("激活 %d 天期望 status %q，实际 %q", tt.days, tt.status, result.Status)
		}
		if got, ok := result.DaysActive.(int); !ok || got != tt.days {
			t.Errorf("激活 %d 天期望 daysActive=%d，实际 %v", tt.days, tt.days, result.DaysActive)
		}
	}
}

func TestClassifyUnparseableDate(t *testing.T) {
	now := time.Now()
	imei := "111111111111111"
	rows := [][]string{row(imei, "Galaxy A16", "Black", "2024-01-01", "2024-02-01", "someday soon")}

	result := Classify(imei, rows, now)

	if result.Category != CategoryActive {
		t.Errorf("无法解析的日期应判定 active，实际 %s", result.Category)
	}
	if result.Status != StatusActive {
		t.Errorf("期望 status %q，实际 %q", StatusActive, result.Status)
	}
	if result.DaysActive != "error" {
		t.Errorf("期望 daysActive 哨兵值 error，实际 %v", result.DaysActive)
	}
}

func TestClassifyDateLayouts(t *testing.T) {
	now := time.Now()
	imei := "111111111111111"
	ten := now.AddDate(0, 0, -10)

	for _, layout := range []string{"2006-01-02", "2006/01/02", "2006-01-02 15:04:05"} {
		rows := [][]string{row(imei, "Galaxy A16", "Black", "2024-01-01", "2024-02-01", ten.Format(layout))}
		result := Classify(imei, rows, now)
		if result.Category != CategoryActive3To15 {
			t.Errorf("日期格式 %s 应解析成功并判定 3-15 天，实际 %s", layout, result.Category)
		}
	}
}

func TestRowToFields(t *testing.T) {
	fields := rowToFields([]string{"1", "x", "111111111111111", "Galaxy", "Blue", "2024-01-01", "2024-02-01", "2024-03-01"})
	if fields.Model != "Galaxy" || fields.Color != "Blue" || fields.ActivationDate != "2024-03-01" {
		t.Errorf("固定下标映射错误: %+v", fields)
	}

	// 短行与空单元格退化为 "-"
	short := rowToFields([]string{"1", "x", "111111111111111", ""})
	if short.Model != "-" || short.ActivationDate != "-" {
		t.Errorf("缺失单元格应退化为 -: %+v", short)
	}
}

func TestPlaceholderResults(t *testing.T) {
	wf := WrongFormatResult("abc")
	if wf.Category != CategoryWrongFormat || wf.Status != StatusWrongFormat {
		t.Errorf("wrong-format 结果形状错误: %+v", wf)
	}

	dup := DuplicateResult("123-456")
	if dup.Category != CategoryDuplicate || dup.IMEI != "123-456" {
		t.Errorf("duplicate 结果应保留原始输入: %+v", dup)
	}

	er := ErrorResult("111111111111111")
	if er.Category != CategoryError || er.Status != StatusError {
		t.Errorf("error 结果形状错误: %+v", er)
	}
}
