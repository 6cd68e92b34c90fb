package checker

import (
	"reflect"
	"testing"
)

func TestParseRows(t *testing.T) {
	html := `<html><body>
	<table>
		<tr><th>No</th><th>Shop</th><th>IMEI</th><th>Model</th></tr>
		<tr>
			<td>1</td>
			<td> 店铺A </td>
			<td>111111111111111</td>
			<td>Galaxy A16</td>
		</tr>
	</table>
	<p>no cells here</p>
	</body></html>`

	rows, err := ParseRows(html)
	if err != nil {
		t.Fatalf("ParseRows 返回错误: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("期望 2 行，实际 %d", len(rows))
	}

	want := []string{"1", "店铺A", "111111111111111", "Galaxy A16"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("单元格文本应去除空白: %v", rows[1])
	}
}

func TestParseRowsEmptyPage(t *testing.T) {
	rows, err := ParseRows(`<html><body><div>nothing</div></body></html>`)
	if err != nil {
		t.Fatalf("ParseRows 返回错误: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("无表格页面应返回空行集，实际 %d 行", len(rows))
	}
}
