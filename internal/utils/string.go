package utils

import (
	"path/filepath"
)

// UniqueStringSlice 删除重复的字符串，保留首次出现的顺序
func UniqueStringSlice(slice []string) []string {
	uniqueSlice := make([]string, 0, len(slice))
	uniqueMap := make(map[string]struct{})
	for _, str := range slice {
		if _, ok := uniqueMap[str]; !ok {
			uniqueMap[str] = struct{}{}
			uniqueSlice = append(uniqueSlice, str)
		}
	}
	return uniqueSlice
}

// DisplayPath 返回相对 base 的路径，无法计算时原样返回
func DisplayPath(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "" {
		return path
	}
	return filepath.ToSlash(rel)
}
