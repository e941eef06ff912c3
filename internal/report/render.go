package report

import (
	"fmt"
	"strings"
)

// remediation is the fixed help block appended when any file failed.
var remediation = []string{
	"---",
	"## 💡 常见问题解决方法",
	"",
	"### JSON 格式错误",
	"- **缺少逗号**: 确保 JSON 对象中的字段用逗号分隔",
	"- **缺少冒号**: 确保键值对用冒号分隔",
	"- **引号不匹配**: 确保所有字符串用双引号包围",
	"- **多余逗号**: 删除最后一个字段后的多余逗号",
	"",
	"### 推荐工具",
	"- 使用 [JSONLint](https://jsonlint.com/) 验证 JSON 格式",
	"- 使用支持 JSON 语法高亮的编辑器（如 VS Code）",
	"",
	"如需帮助，请查看 [用户指南](https://github.com/bestzwei/LibreDomains/blob/main/docs/user-guide.md)",
}

// Render converts a ResultSet into the Markdown validation report.
// Output depends only on the set contents: identical input yields
// byte-identical output.
func Render(rs *ResultSet) string {
	var lines []string
	lines = append(lines, "# 🤖 域名配置验证结果\n")

	total := rs.Len()
	failing := rs.Failing()
	passing := total - failing

	if failing == 0 {
		lines = append(lines, "## ✅ 验证通过")
		lines = append(lines, fmt.Sprintf("所有 %d 个文件验证通过，没有发现问题。\n", total))
	} else {
		lines = append(lines, "## ❌ 验证失败")
		lines = append(lines, fmt.Sprintf("共 %d 个文件，其中 %d 个文件有问题，%d 个文件正常。\n", total, failing, passing))
	}

	for _, fr := range rs.Entries() {
		if len(fr.Errors) > 0 {
			lines = append(lines, fmt.Sprintf("### ❌ `%s`", fr.Path), "")
			for i, msg := range fr.Errors {
				lines = append(lines, renderError(i+1, msg)...)
			}
			lines = append(lines, "")
		} else {
			lines = append(lines, fmt.Sprintf("### ✅ `%s`", fr.Path), "", "验证通过，没有发现问题。", "")
		}
	}

	if failing > 0 {
		lines = append(lines, remediation...)
	}

	return strings.Join(lines, "\n")
}

// renderError formats one numbered error message. A message containing
// line breaks becomes a heading line followed by an indented bullet per
// non-blank continuation line.
func renderError(n int, msg string) []string {
	if !strings.Contains(msg, "\n") {
		return []string{fmt.Sprintf("**错误 %d:** %s", n, msg)}
	}
	parts := strings.Split(msg, "\n")
	out := []string{fmt.Sprintf("**错误 %d:** %s", n, parts[0])}
	for _, cont := range parts[1:] {
		if strings.TrimSpace(cont) != "" {
			out = append(out, "  - "+strings.TrimSpace(cont))
		}
	}
	return out
}

// RenderFatal produces the best-effort report written when the run
// itself failed. trace may be empty; when present it is embedded as a
// fenced code block.
func RenderFatal(msg, trace string) string {
	doc := "## ❌ 执行失败\n\n程序执行失败: " + msg
	if trace != "" {
		doc += "\n\n```\n" + strings.TrimRight(trace, "\n") + "\n```"
	}
	return doc
}
