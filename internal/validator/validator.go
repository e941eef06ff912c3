package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/libredomains/ldcheck/internal/report"
)

// DomainValidator applies the registry rules to subdomain registration
// files. Root is the project root used to locate the default registry
// config when none is supplied.
type DomainValidator struct {
	Root string
}

// ValidatePullRequest checks every file and returns whether all of
// them passed together with the per-file error ledger. Files are
// reported in input order. The error return is reserved for failures
// of the validator itself; rule violations go into the ledger.
func (v *DomainValidator) ValidatePullRequest(files []string, cfg *Config) (bool, *report.ResultSet, error) {
	results := report.NewResultSet()

	if cfg == nil {
		loaded, err := LoadConfig(v.Root, "")
		if err != nil {
			for _, f := range files {
				results.Add(f, "无法加载项目配置: "+err.Error())
			}
			return false, results, nil
		}
		cfg = loaded
	}

	allValid := true
	for _, f := range files {
		errs := v.checkFile(f, cfg)
		results.Add(f, errs...)
		if len(errs) > 0 {
			allValid = false
		}
	}
	return allValid, results, nil
}

// checkFile validates a single changed file: its location in the
// repository layout, the subdomain it names, and its JSON content.
func (v *DomainValidator) checkFile(path string, cfg *Config) []string {
	if _, err := os.Stat(path); err != nil {
		return []string{"文件不存在: " + path}
	}

	domain, filename, ok := splitDomainPath(path)
	if !ok {
		if !strings.Contains(filepath.ToSlash(path), "/domains/") {
			return []string{"文件必须位于 domains/ 目录下"}
		}
		return []string{"无效的文件路径，应为 domains/domain/subdomain.json"}
	}

	dom, found := cfg.domain(domain)
	if !found {
		return []string{fmt.Sprintf("不支持的域名 '%s'", domain)}
	}
	if !dom.Enabled {
		return []string{fmt.Sprintf("域名 '%s' 未开放申请", domain)}
	}

	if !strings.HasSuffix(filename, ".json") {
		return []string{"文件必须是 JSON 格式"}
	}
	sub := strings.TrimSuffix(filename, ".json")
	if !ValidLabel(sub) {
		return []string{fmt.Sprintf("无效的子域名 '%s'", sub)}
	}
	if cfg.reserved(sub) {
		return []string{fmt.Sprintf("子域名 '%s' 已被保留", sub)}
	}

	return validateDomainFile(path, cfg)
}

// splitDomainPath extracts the parent domain and filename from a path
// of the form .../domains/<domain>/<filename>.
func splitDomainPath(path string) (domain, filename string, ok bool) {
	normalized := filepath.ToSlash(path)
	_, after, found := strings.Cut(normalized, "/domains/")
	if !found {
		return "", "", false
	}
	parts := strings.Split(after, "/")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// validateDomainFile checks the JSON content of a registration file:
// the owner block and every DNS record.
func validateDomainFile(path string, cfg *Config) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("无法读取文件: %v", err)}
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("JSON 格式错误: %v", err)}
	}

	var errs []string
	errs = append(errs, checkOwner(doc)...)
	errs = append(errs, checkRecords(doc, cfg)...)
	return errs
}

// checkOwner validates the owner block: required fields plus GitHub
// username and email syntax.
func checkOwner(doc map[string]any) []string {
	raw, present := doc["owner"]
	if !present {
		return []string{"缺少 'owner' 部分"}
	}
	owner, ok := raw.(map[string]any)
	if !ok {
		return []string{"'owner' 部分格式错误"}
	}

	var errs []string
	for _, field := range []string{"name", "github", "email"} {
		if _, ok := owner[field]; !ok {
			errs = append(errs, fmt.Sprintf("缺少所有者必填字段 '%s'", field))
		}
	}
	if gh, ok := owner["github"]; ok {
		if s, isStr := gh.(string); !isStr || !ValidGitHubUsername(s) {
			errs = append(errs, fmt.Sprintf("无效的 GitHub 用户名 '%v'", gh))
		}
	}
	if em, ok := owner["email"]; ok {
		if s, isStr := em.(string); !isStr || !ValidEmail(s) {
			errs = append(errs, fmt.Sprintf("无效的邮箱地址 '%v'", em))
		}
	}
	return errs
}

// checkRecords validates the records block: record count against the
// configured cap, then each record individually.
func checkRecords(doc map[string]any, cfg *Config) []string {
	raw, present := doc["records"]
	if !present {
		return []string{"缺少 'records' 部分"}
	}
	records, ok := raw.([]any)
	if !ok {
		return []string{"'records' 部分格式错误"}
	}

	var errs []string
	if max := cfg.maxRecords(); len(records) > max {
		errs = append(errs, fmt.Sprintf("记录数量超过限制 (%d > %d)", len(records), max))
	}
	for i, raw := range records {
		record, ok := raw.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("记录 #%d: 记录格式错误", i+1))
			continue
		}
		for _, msg := range checkRecord(record, cfg) {
			errs = append(errs, fmt.Sprintf("记录 #%d: %s", i+1, msg))
		}
	}
	return errs
}

// checkRecord validates one DNS record against the registry rules.
func checkRecord(record map[string]any, cfg *Config) []string {
	var errs []string
	for _, field := range []string{"type", "name", "content", "ttl"} {
		if _, ok := record[field]; !ok {
			errs = append(errs, fmt.Sprintf("缺少必填字段 '%s'", field))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	rtype, _ := record["type"].(string)
	name, _ := record["name"].(string)
	content, _ := record["content"].(string)

	if !containsString(cfg.RecordTypes, rtype) {
		errs = append(errs, fmt.Sprintf("不支持的记录类型 '%s'，支持的类型: %s",
			rtype, strings.Join(cfg.RecordTypes, ", ")))
	}
	if !ValidLabel(name) {
		errs = append(errs, fmt.Sprintf("无效的记录名称 '%s'", name))
	}
	if ttl, ok := intValue(record["ttl"]); !ok || ttl < 60 || ttl > 86400 {
		errs = append(errs, fmt.Sprintf("无效的 TTL 值 '%v'，必须为 60~86400 之间的整数", record["ttl"]))
	}
	if proxied, ok := record["proxied"]; ok {
		if _, isBool := proxied.(bool); !isBool {
			errs = append(errs, fmt.Sprintf("无效的 proxied 值 '%v'，必须为布尔值", proxied))
		}
	}

	switch rtype {
	case "A":
		if !ValidIPv4(content) {
			errs = append(errs, fmt.Sprintf("无效的 A 记录 IP 地址 '%s'", content))
		}
	case "AAAA":
		if !ValidIPv6(content) {
			errs = append(errs, fmt.Sprintf("无效的 AAAA 记录 IPv6 地址 '%s'", content))
		}
	case "CNAME":
		if !validCNAMETarget(content) {
			errs = append(errs, fmt.Sprintf("无效的 CNAME 记录目标 '%s'", content))
		}
	case "MX":
		prio, ok := record["priority"]
		if !ok {
			errs = append(errs, "MX 记录缺少 'priority' 字段")
		} else if p, isInt := intValue(prio); !isInt || p < 0 || p > 65535 {
			errs = append(errs, fmt.Sprintf("无效的 MX 优先级值 '%v'，必须为 0~65535 之间的整数", prio))
		}
	}
	return errs
}

// intValue extracts an integral number from a decoded JSON value.
// encoding/json yields float64 for all numbers.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
