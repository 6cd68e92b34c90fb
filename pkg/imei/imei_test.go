package imei

import (
	"reflect"
	"testing"
)

func TestValidatePartitionIsExhaustive(t *testing.T) {
	tests := []struct {
		name  string
		input []string
	}{
		{"空输入", nil},
		{"混合输入", []string{"123456789012345", "abc", "", "123-456-789-012-345", "99999"}},
		{"全部无效", []string{"", "x", "12"}},
		{"全部重复", []string{"123456789012345", "123456789012345", "123456789012345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Validate(tt.input)
			if p.Total() != len(tt.input) {
				t.Errorf("期望分区总数为 %d，实际为 %d", len(tt.input), p.Total())
			}

			unique := make(map[string]bool)
			for _, v := range p.Valid {
				if unique[v] {
					t.Errorf("valid 分区出现重复值: %s", v)
				}
				unique[v] = true
				if !IsCanonical(v) {
					t.Errorf("valid 分区包含非规范 IMEI: %q", v)
				}
			}
		})
	}
}

func TestValidateScenario(t *testing.T) {
	p := Validate([]string{"123456789012345", "123-456-789-012-345", "abc"})

	if !reflect.DeepEqual(p.Valid, []string{"123456789012345"}) {
		t.Errorf("valid 期望 [123456789012345]，实际 %v", p.Valid)
	}
	if !reflect.DeepEqual(p.Duplicates, []string{"123-456-789-012-345"}) {
		t.Errorf("duplicates 期望保留原始输入，实际 %v", p.Duplicates)
	}
	if !reflect.DeepEqual(p.WrongFormat, []string{"abc"}) {
		t.Errorf("wrongFormat 期望 [abc]，实际 %v", p.WrongFormat)
	}
}

func TestValidateIdempotent(t *testing.T) {
	first := Validate([]string{"123456789012345", "555-555-555-555-555", "junk"})
	second := Validate(first.Valid)

	if !reflect.DeepEqual(second.Valid, first.Valid) {
		t.Errorf("再次校验 valid 输出应保持不变，实际 %v", second.Valid)
	}
	if len(second.WrongFormat) != 0 || len(second.Duplicates) != 0 {
		t.Errorf("再次校验不应产生 wrongFormat/duplicates: %v %v",
			second.WrongFormat, second.Duplicates)
	}
}

func TestValidateWrongLength(t *testing.T) {
	tests := []struct {
		input string
	}{
		{"12345678901234"},   // 14 位
		{"1234567890123456"}, // 16 位
		{"abcdefghijklmno"},
		{""},
	}

	for _, tt := range tests {
		p := Validate([]string{tt.input})
		if len(p.WrongFormat) != 1 {
			t.Errorf("输入 %q 应进入 wrongFormat 分区", tt.input)
		}
	}
}

func TestClean(t *testing.T) {
	if got := Clean("123-456-789-012-345"); got != "123456789012345" {
		t.Errorf("Clean 期望去除分隔符，实际 %q", got)
	}
	if got := Clean("  1 2 3 abc"); got != "123" {
		t.Errorf("Clean 期望仅保留数字，实际 %q", got)
	}
}
