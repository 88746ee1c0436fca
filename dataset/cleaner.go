// Package dataset 提供目录数据的装载、清洗、示例生成与导出。
//
// 引擎只接受清洗后的目录：ID 唯一、类别值落在有限词表、必填字段不缺。
// 本包负责把原始数据整理成这种形态。
package dataset

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/feature"
)

// 缺失值填充文案。
const (
	FillServiceName = "Unnamed Service"
	FillDescription = "No description available for this service."
)

// MinDescriptionLength 是合法记录的最短描述长度，更短的记录视为无效。
const MinDescriptionLength = 10

// 文本字段只保留字母数字、空白与基础标点。
var specialChars = regexp.MustCompile(`[^\w\s.,!?-]`)

// Report 记录一次清洗的统计数字。
type Report struct {
	OriginalRecords       int `json:"original_records"`
	FinalRecords          int `json:"final_records"`
	RecordsRemoved        int `json:"records_removed"`
	DuplicatesRemoved     int `json:"duplicates_removed"`
	MissingValuesFilled   int `json:"missing_values_filled"`
	InvalidRecordsRemoved int `json:"invalid_records_removed"`
}

// Cleaner 将原始目录清洗为引擎可用的规范目录。
//
// 清洗步骤（顺序固定）：
//  1. 去重：先整行，再按 ID 保留首条
//  2. 缺失填充：ID 按行号生成，类别取列众数（无众数用 Unknown），
//     名称与描述用占位文案
//  3. 文本清理：折叠空白、剔除特殊字符、名称标题化
//  4. 类别标准化：大小写/同义词折叠到规范词表
//  5. 无效剔除：价格或语言不在词表、描述过短的记录
type Cleaner struct{}

func NewCleaner() *Cleaner { return &Cleaner{} }

// Clean 执行全部清洗步骤，返回规范目录与清洗报告。输入不被修改。
func (c *Cleaner) Clean(raw []core.Service) ([]core.Service, Report) {
	report := Report{OriginalRecords: len(raw)}

	svcs, origIdx, dups := dedupe(raw)
	report.DuplicatesRemoved = dups

	report.MissingValuesFilled = fillMissing(svcs, origIdx)

	cleanText(svcs)
	standardize(svcs)

	out, invalid := dropInvalid(svcs)
	report.InvalidRecordsRemoved = invalid

	report.FinalRecords = len(out)
	report.RecordsRemoved = report.OriginalRecords - report.FinalRecords
	return out, report
}

// dedupe 去重并返回每条记录的原始行号（缺失 ID 的生成依赖它）。
func dedupe(raw []core.Service) ([]core.Service, []int, int) {
	seenRow := make(map[string]bool, len(raw))
	seenID := make(map[string]bool, len(raw))
	svcs := make([]core.Service, 0, len(raw))
	origIdx := make([]int, 0, len(raw))
	dups := 0

	for i, svc := range raw {
		rowKey := strings.Join([]string{
			svc.ID, svc.Name, svc.BusinessType, svc.PriceCategory,
			svc.LanguageSupport, svc.LocationArea, svc.Description,
		}, "\x00")
		if seenRow[rowKey] {
			dups++
			continue
		}
		seenRow[rowKey] = true

		if svc.ID != "" {
			if seenID[svc.ID] {
				dups++
				continue
			}
			seenID[svc.ID] = true
		}

		svcs = append(svcs, svc)
		origIdx = append(origIdx, i)
	}
	return svcs, origIdx, dups
}

// fillMissing 填充缺失值，返回填充的单元格数量。
func fillMissing(svcs []core.Service, origIdx []int) int {
	modes := make(map[string]string, core.NumFields)
	for _, field := range core.FieldOrder() {
		modes[field] = columnMode(svcs, field)
	}

	filled := 0
	for i := range svcs {
		svc := &svcs[i]
		if svc.ID == "" {
			svc.ID = fmt.Sprintf("SRV_%04d", origIdx[i])
			filled++
		}
		if svc.Name == "" {
			svc.Name = FillServiceName
			filled++
		}
		for _, field := range core.FieldOrder() {
			if svc.Field(field) != "" {
				continue
			}
			fill := modes[field]
			if fill == "" {
				fill = feature.Unknown
			}
			setField(svc, field, fill)
			filled++
		}
		if svc.Description == "" {
			svc.Description = FillDescription
			filled++
		}
	}
	return filled
}

// columnMode 返回某列非空值的众数；并列时取字典序最小，全空返回 ""。
func columnMode(svcs []core.Service, field string) string {
	counts := make(map[string]int)
	for i := range svcs {
		if v := svcs[i].Field(field); v != "" {
			counts[v]++
		}
	}
	mode, best := "", 0
	for v, n := range counts {
		if n > best || (n == best && v < mode) {
			mode, best = v, n
		}
	}
	return mode
}

func setField(svc *core.Service, field, value string) {
	switch field {
	case core.FieldBusinessType:
		svc.BusinessType = value
	case core.FieldPriceCategory:
		svc.PriceCategory = value
	case core.FieldLanguageSupport:
		svc.LanguageSupport = value
	case core.FieldLocationArea:
		svc.LocationArea = value
	}
}

// cleanText 清理名称与描述：折叠空白、剔除特殊字符、名称标题化。
func cleanText(svcs []core.Service) {
	for i := range svcs {
		svc := &svcs[i]
		svc.Name = feature.CollapseSpaces(specialChars.ReplaceAllString(svc.Name, ""))
		svc.Name = feature.TitleCase(svc.Name)
		svc.Description = feature.CollapseSpaces(specialChars.ReplaceAllString(svc.Description, ""))
	}
}

// standardize 将类别字段折叠到规范词表。
func standardize(svcs []core.Service) {
	for i := range svcs {
		svc := &svcs[i]
		for _, field := range core.FieldOrder() {
			setField(svc, field, feature.NormalizeField(field, svc.Field(field)))
		}
	}
}

// dropInvalid 剔除不满足最低质量要求的记录。
func dropInvalid(svcs []core.Service) ([]core.Service, int) {
	validPrice := vocabSet(feature.PriceCategories())
	validLanguage := vocabSet(feature.Languages())

	out := make([]core.Service, 0, len(svcs))
	invalid := 0
	for _, svc := range svcs {
		switch {
		case !validPrice[svc.PriceCategory],
			!validLanguage[svc.LanguageSupport],
			len(svc.Description) < MinDescriptionLength:
			invalid++
		default:
			out = append(out, svc)
		}
	}
	return out, invalid
}

// vocabSet 把词表转成查询集合，统一放行 Unknown 填充值。
func vocabSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values)+1)
	for _, v := range values {
		set[v] = true
	}
	set[feature.Unknown] = true
	return set
}
