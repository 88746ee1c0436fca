package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rushteam/matchkit/core"
)

// CSV 列头，与既有数据集文件格式保持一致。
var csvHeader = []string{
	"Service_ID", "Service_Name", "Target_Business_Type",
	"Price_Category", "Language_Support", "Location_Area", "Description",
}

// LoadCSV 从 CSV 文件装载目录。列按表头名定位，顺序无关；缺列报配置错误。
// 返回的是未清洗的原始记录，通常再经 Cleaner 处理。
func LoadCSV(path string) ([]core.Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, core.NewInvalidInputError(core.ModuleDataset, "csv file is empty: "+path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range csvHeader {
		if _, ok := col[required]; !ok {
			return nil, core.NewInvalidInputError(core.ModuleDataset, "csv missing required column: "+required)
		}
	}

	get := func(row []string, name string) string {
		i := col[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]core.Service, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, core.Service{
			ID:              get(row, "Service_ID"),
			Name:            get(row, "Service_Name"),
			BusinessType:    get(row, "Target_Business_Type"),
			PriceCategory:   get(row, "Price_Category"),
			LanguageSupport: get(row, "Language_Support"),
			LocationArea:    get(row, "Location_Area"),
			Description:     get(row, "Description"),
		})
	}
	return out, nil
}

// SaveCSV 将目录写为 CSV 文件，列头与 LoadCSV 对齐。
func SaveCSV(path string, services []core.Service) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range services {
		svc := &services[i]
		record := []string{
			svc.ID, svc.Name, svc.BusinessType,
			svc.PriceCategory, svc.LanguageSupport, svc.LocationArea, svc.Description,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ExportRecommendations 将推荐结果导出为 CSV，分数保留两位小数，
// 列结构与页面展示共用同一交换格式。
func ExportRecommendations(path string, recs []core.Recommendation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"Service_ID", "Service_Name", "Match_Score", "Match_Quality", "Explanation", "Description"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range recs {
		rec := recs[i].Record()
		row := []string{
			rec.ServiceID,
			rec.ServiceName,
			strconv.FormatFloat(rec.Score, 'f', 2, 64),
			string(rec.Quality),
			rec.Explanation,
			rec.Description,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
