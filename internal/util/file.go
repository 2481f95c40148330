package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// DefaultResumeName 文件名清理后为空时使用
const DefaultResumeName = "resume"

// SecureFilename 把用户上传的文件名规整为只包含 ASCII 字母数字、下划线、点和横线的安全文件名。
// 先做 NFKD 分解，带重音的字母保留基本字母（é -> e），其余非 ASCII 字符丢弃；
// 路径分隔符和空白替换为下划线，开头和结尾的点、下划线会被去掉
func SecureFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, norm.NFKD.String(name))
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// ResumeFilename 简历存储名: {user_name}_{original_filename}，清理后为空时返回 DefaultResumeName
func ResumeFilename(userName, original string) string {
	if name := SecureFilename(userName + "_" + original); name != "" {
		return name
	}
	return DefaultResumeName
}
