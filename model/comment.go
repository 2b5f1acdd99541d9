package model

import (
	"fmt"
	"strings"
)

// Comment is an ordered list of comment lines.
type Comment struct {
	Comments []string `json:"comments"`
}

// NewComment creates a Comment holding lines in order.
func NewComment(lines ...string) *Comment {
	c := &Comment{Comments: make([]string, 0, len(lines))}
	for _, l := range lines {
		c.AddComment(l)
	}
	return c
}

// AddComment appends a line.
func (c *Comment) AddComment(s string) {
	c.Comments = append(c.Comments, s)
}

func (c *Comment) String() string {
	return fmt.Sprintf("Comment(commentList=[%s])", strings.Join(c.Comments, ", "))
}

// Post has the same shape as Comment; the posts sample flattens its lines.
type Post struct {
	Comments []string `json:"comments"`
}

// NewPost creates a Post holding lines in order.
func NewPost(lines ...string) *Post {
	p := &Post{Comments: make([]string, 0, len(lines))}
	for _, l := range lines {
		p.AddComment(l)
	}
	return p
}

// AddComment appends a line.
func (p *Post) AddComment(s string) {
	p.Comments = append(p.Comments, s)
}

func (p *Post) String() string {
	return fmt.Sprintf("Post(commentList=[%s])", strings.Join(p.Comments, ", "))
}

// UserComments pairs a user with their comments.
type UserComments struct {
	User    *User    `json:"user" validate:"required"`
	Comment *Comment `json:"comment" validate:"required"`
}

// NewUserComments pairs u with c.
func NewUserComments(u *User, c *Comment) *UserComments {
	return &UserComments{User: u, Comment: c}
}

func (uc *UserComments) String() string {
	return fmt.Sprintf("UserComments(user=%s, post=%s)", uc.User, uc.Comment)
}
