package imports

import (
	"errors"
	"fmt"
	"strings"

	"carpetqr/internal/domain"
)

// 整体拒绝类错误：不处理任何数据行。
var (
	ErrEmptyFile = errors.New("导入文件为空")
	ErrBadHeader = errors.New("CSV 表头与预期不符")
)

// 分隔符固定为分号，不支持字段内转义；字段里的分号一律按列边界处理。
const fieldSep = ";"

// Header 记录表头列名顺序与列名到列位的映射，重复列名以首次出现为准。
type Header struct {
	Names []string
	pos   map[string]int
	idPos int
}

// Pos 返回列名对应的列位（首次出现处）。
func (h *Header) Pos(name string) (int, bool) {
	i, ok := h.pos[name]
	return i, ok
}

// Len 返回表头列数。
func (h *Header) Len() int { return len(h.Names) }

// Row 是一行通过校验的数据：标识加按表头名索引的字段表，
// 空白单元格不进表（缺失而非空串），避免 merge 时把远端已有字段冲成空。
type Row struct {
	Line   int
	ID     string
	Fields map[string]string
}

// File 是解析完的导入文件：表头、通过的行与被拒的行数。
type File struct {
	Header   Header
	Records  []Row
	Rejected int
}

// Parse 把原始导入文本解析为 File。
//
// 行按换行符切分并去掉行尾回车，空行丢弃；首个非空行是表头。
// 表头必须同时带 ID 和 IMAGE_URL 标记（在切分前按原文判断），
// 否则整体拒绝。数据行列数少于表头、或 ID 列为空白时按行拒绝计数，
// 不影响其余行。
func Parse(raw string) (*File, error) {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}

	headerLine := strings.TrimSpace(lines[0])
	if !strings.Contains(headerLine, domain.ColID) || !strings.Contains(headerLine, domain.ColImageURL) {
		return nil, fmt.Errorf("%w: 缺少 %s 或 %s 列", ErrBadHeader, domain.ColID, domain.ColImageURL)
	}

	header := Header{pos: make(map[string]int)}
	for i, name := range strings.Split(headerLine, fieldSep) {
		name = strings.TrimSpace(name)
		header.Names = append(header.Names, name)
		if _, seen := header.pos[name]; !seen {
			header.pos[name] = i
		}
	}
	idPos, ok := header.pos[domain.ColID]
	if !ok {
		return nil, fmt.Errorf("%w: 无法定位 %s 列", ErrBadHeader, domain.ColID)
	}
	header.idPos = idPos

	file := &File{Header: header}
	for n, line := range lines[1:] {
		cols := strings.Split(line, fieldSep)
		if len(cols) < header.Len() {
			file.Rejected++
			continue
		}
		id := strings.TrimSpace(cols[idPos])
		if id == "" {
			file.Rejected++
			continue
		}

		fields := make(map[string]string, header.Len())
		for i, name := range header.Names {
			if header.pos[name] != i {
				// 重复列名只认首个。
				continue
			}
			v := strings.TrimSpace(cols[i])
			if name == domain.ColImageURL || name == domain.ColImageAlt {
				v = CleanURL(v)
			}
			if v == "" {
				continue
			}
			fields[name] = v
		}
		file.Records = append(file.Records, Row{Line: n + 2, ID: id, Fields: fields})
	}
	return file, nil
}
