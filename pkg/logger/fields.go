package logger

// 日志字段名常量，同一含义的字段在全部日志里保持同名，方便检索聚合
const (
	FieldTraceID    = "traceId"    // 请求追踪 ID
	FieldIdentifier = "identifier" // 链接标识符
	FieldPath       = "path"       // 文件路径
	FieldDuration   = "duration"   // 耗时
	FieldMethod     = "method"     // 方法名
	FieldSize       = "size"       // 文件大小（字节）
	FieldBucket     = "bucket"     // 存储桶
	FieldFileKey    = "fileKey"    // 对象键
)
