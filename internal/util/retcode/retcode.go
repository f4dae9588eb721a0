package retcode

// 业务码沿用旧前端约定：正 1 成功，负值为具体错误
const (
	SUCCESS              = 1
	INVALID              = -1
	DB_SAVE_ERROR        = -2
	DB_READ_ERROR        = -3
	LOGIN_ERROR          = -7
	NOT_EXISTS           = -8
	JSON_PARSE_FAIL      = -9
	EMPTY_PARAMS         = -12
	DATA_EXISTS          = -13
	AUTH_ERROR           = -14
	HAS_CHILDREN         = -15
	ACCESS_TOKEN_TIMEOUT = -996
	UNKNOWN              = -998
	EXCEPTION            = -999
)
