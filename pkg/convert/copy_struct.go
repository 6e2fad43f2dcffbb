package convert

import "github.com/jinzhu/copier"

// StructAssign copies same-named fields from src into dst and returns dst.
// Convertible field types (for example wall-clock wrapper types) are converted.
// StructAssign 把 src 与 dst 同名字段的值复制到 dst 中并返回 dst，可转换的字段类型会自动转换
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}
