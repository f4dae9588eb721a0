package handler

// Set 聚合全部 HTTP handler，由 wire 装配
type Set struct {
	Auth    *AuthHandler
	User    *UserHandler
	Role    *RoleHandler
	Menu    *MenuHandler
	Article *ArticleHandler
	Content *ContentHandler
	Log     *LogHandler
	Blog    *BlogHandler
}

func NewSet(
	auth *AuthHandler,
	user *UserHandler,
	role *RoleHandler,
	menu *MenuHandler,
	article *ArticleHandler,
	content *ContentHandler,
	log *LogHandler,
	blog *BlogHandler,
) *Set {
	return &Set{
		Auth: auth, User: user, Role: role, Menu: menu,
		Article: article, Content: content, Log: log, Blog: blog,
	}
}
