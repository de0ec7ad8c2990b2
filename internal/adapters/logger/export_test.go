package logger

var (
	CollectErrorChain = collectErrorChain
	FormatErrorChain  = formatErrorChain
)
