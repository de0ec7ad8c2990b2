package pipeline

var RecoverViolation = recoverViolation
