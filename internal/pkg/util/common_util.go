package util

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}

// PtrFloat64 用于将 float64 转换为 *float64
func PtrFloat64(f float64) *float64 {
	return &f
}

// IntOrZero 解引用 *int，nil 时返回 0
func IntOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
