package dataset

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "survey.csv", "a,b\n1,x\n2,y\n3,\n")
	d, err := Load(path, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Rows() != 3 {
		t.Fatalf("Rows = %d, want 3", d.Rows())
	}
	names := d.ColumnNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("ColumnNames = %v", names)
	}
	col, err := d.Column("b")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if !col.Cell(2).IsMissing() {
		t.Error("blank value should load as missing")
	}
}

func TestLoadTSVSniffsTab(t *testing.T) {
	path := writeFile(t, "survey.tsv", "a\tb\n1\t2\n")
	d, err := Load(path, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(d.ColumnNames()); got != 2 {
		t.Fatalf("columns = %d, want 2", got)
	}
}

func TestLoadSemicolonDelimiter(t *testing.T) {
	path := writeFile(t, "survey.csv", "a;b\n1;2\n")
	opt := DefaultLoadOptions()
	opt.Delimiter = ';'
	d, err := Load(path, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(d.ColumnNames()); got != 2 {
		t.Fatalf("columns = %d, want 2", got)
	}
}

func TestLoadMaxRows(t *testing.T) {
	path := writeFile(t, "survey.csv", "a\n1\n2\n3\n4\n5\n")
	opt := DefaultLoadOptions()
	opt.MaxRows = 2
	d, err := Load(path, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Rows() != 2 {
		t.Fatalf("Rows = %d, want 2", d.Rows())
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "survey.docx", "not a table")
	if _, err := Load(path, DefaultLoadOptions()); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoadShortRowsPadded(t *testing.T) {
	path := writeFile(t, "survey.csv", "a,b,c\n1,2\n")
	d, err := Load(path, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	col, err := d.Column("c")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if !col.Cell(0).IsMissing() {
		t.Error("padded cell should be missing")
	}
}

// writeXLSX builds a minimal two-sheet workbook. Sheet "Data" carries the
// given header and rows as inline strings; sheet "Empty" has no rows.
func writeXLSX(t *testing.T, header []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create xlsx: %v", err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)

	add := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}

	add("xl/workbook.xml", `<?xml version="1.0"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"
          xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets>
    <sheet name="Data" sheetId="1" r:id="rId1"/>
    <sheet name="Empty" sheetId="2" r:id="rId2"/>
  </sheets>
</workbook>`)
	add("xl/_rels/workbook.xml.rels", `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet2.xml"/>
</Relationships>`)

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`)
	writeRow := func(rowIdx int, cells []string) {
		sb.WriteString(fmt.Sprintf(`<row r="%d">`, rowIdx))
		for i, v := range cells {
			ref := fmt.Sprintf("%c%d", 'A'+i, rowIdx)
			if _, ok := ParseNumeric(v); ok && !strings.Contains(v, ",") {
				sb.WriteString(fmt.Sprintf(`<c r="%s"><v>%s</v></c>`, ref, v))
			} else {
				sb.WriteString(fmt.Sprintf(`<c r="%s" t="inlineStr"><is><t>%s</t></is></c>`, ref, v))
			}
		}
		sb.WriteString(`</row>`)
	}
	writeRow(1, header)
	for i, row := range rows {
		writeRow(i+2, row)
	}
	sb.WriteString(`</sheetData></worksheet>`)
	add("xl/worksheets/sheet1.xml", sb.String())
	add("xl/worksheets/sheet2.xml", `<?xml version="1.0"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData/></worksheet>`)

	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeXLSX(t,
		[]string{"age", "score"},
		[][]string{{"34", "7.5"}, {"29", "6"}, {"41", "8.25"}},
	)
	d, err := Load(path, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Rows() != 3 {
		t.Fatalf("Rows = %d, want 3", d.Rows())
	}
	if err := d.Coerce("age", "score"); err != nil {
		t.Fatalf("Coerce: %v", err)
	}
	col, _ := d.Column("score")
	nums := col.Numbers()
	if len(nums) != 3 || nums[2] != 8.25 {
		t.Fatalf("score values = %v", nums)
	}
}

func TestLoadXLSXSheetByName(t *testing.T) {
	path := writeXLSX(t, []string{"a"}, [][]string{{"1"}})
	opt := DefaultLoadOptions()
	opt.Sheet = "Empty"
	d, err := Load(path, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Rows() != 0 {
		t.Fatalf("Empty sheet should have 0 rows, got %d", d.Rows())
	}

	opt.Sheet = "Missing"
	if _, err := Load(path, opt); err == nil {
		t.Fatal("expected error for unknown sheet name")
	}
}

func TestLoadXLSXSheetByIndex(t *testing.T) {
	path := writeXLSX(t, []string{"a"}, [][]string{{"1"}, {"2"}})
	opt := DefaultLoadOptions()
	opt.SheetIndex = 2
	d, err := Load(path, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Rows() != 0 {
		t.Fatalf("sheet 2 should be empty, got %d rows", d.Rows())
	}
}
