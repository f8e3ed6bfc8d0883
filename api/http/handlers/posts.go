package handlers

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dkozyrev/devconnect/api/http/presenter"
	"github.com/dkozyrev/devconnect/pkg/auth"
	"github.com/dkozyrev/devconnect/pkg/post"
)

type PostsHandler struct {
	useCase post.UseCase
	log     *logrus.Logger
}

func NewPostsHandler(useCase post.UseCase, log *logrus.Logger) *PostsHandler {
	return &PostsHandler{useCase: useCase, log: log}
}

type postRequest struct {
	Text string `json:"text"`
}

func (r postRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required.Error("Text is required")),
	)
}

type commentRequest struct {
	Text string `json:"text"`
}

func (r commentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required.Error("Text is required to post comment")),
	)
}

// Create publishes a post by the caller.
// @Summary Create post
// @Tags    posts
// @Accept  json
// @Produce json
// @Param   input body postRequest true "post text"
// @Security TokenAuth
// @Success 200 {object} post.Post
// @Failure 400 {object} presenter.ErrorListResponse
// @Router  /posts [post]
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.ErrorList(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := req.Validate(); err != nil {
		return presenter.ValidationErrors(c, err)
	}
	p, err := h.useCase.Create(c.Context(), id, req.Text)
	if err != nil {
		h.log.WithError(err).Error("create post failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// List returns the feed, newest first.
// @Summary List posts
// @Tags    posts
// @Produce json
// @Security TokenAuth
// @Success 200 {array} post.Post
// @Router  /posts [get]
func (h *PostsHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	posts, err := h.useCase.List(c.Context(), limit, offset)
	if err != nil {
		h.log.WithError(err).Error("list posts failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}
	return presenter.JSON(c, http.StatusOK, posts)
}

// Get returns a single post.
// @Summary Get post
// @Tags    posts
// @Produce json
// @Param   id path string true "post id"
// @Security TokenAuth
// @Success 200 {object} post.Post
// @Failure 400 {object} presenter.MsgResponse
// @Router  /posts/{id} [get]
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Msg(c, http.StatusBadRequest, "Invalid Id")
	}
	p, err := h.useCase.Get(c.Context(), postID)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return presenter.Msg(c, http.StatusBadRequest, "Post does not exist")
		}
		h.log.WithError(err).Error("get post failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// Delete removes the caller's own post.
// @Summary Delete post
// @Tags    posts
// @Produce json
// @Param   id path string true "post id"
// @Security TokenAuth
// @Success 200 {object} presenter.MsgResponse
// @Failure 401 {object} presenter.MsgResponse
// @Router  /posts/{id} [delete]
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Msg(c, http.StatusBadRequest, "Post not found")
	}
	if err := h.useCase.Delete(c.Context(), id, postID); err != nil {
		switch {
		case errors.Is(err, post.ErrNotFound):
			return presenter.Msg(c, http.StatusBadRequest, "Post not found")
		case errors.Is(err, auth.ErrForbidden):
			return presenter.Msg(c, http.StatusUnauthorized, "Unauthorized to delete post")
		}
		h.log.WithError(err).Error("delete post failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}
	return presenter.Msg(c, http.StatusOK, "Post removed")
}

// Like records the caller's like and returns the updated like list.
// @Summary Like post
// @Tags    posts
// @Produce json
// @Param   id path string true "post id"
// @Security TokenAuth
// @Success 200 {array} post.Like
// @Failure 400 {object} presenter.MsgResponse
// @Router  /posts/like/{id} [put]
func (h *PostsHandler) Like(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Msg(c, http.StatusBadRequest, "Post not found")
	}
	likes, err := h.useCase.Like(c.Context(), id, postID)
	if err != nil {
		switch {
		case errors.Is(err, post.ErrNotFound):
			return presenter.Msg(c, http.StatusBadRequest, "Post not found")
		case errors.Is(err, post.ErrAlreadyLiked):
			return presenter.Msg(c, http.StatusBadRequest, "Post already liked")
		}
		h.log.WithError(err).Error("like post failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}
	return presenter.JSON(c, http.StatusOK, likes)
}

// Unlike withdraws the caller's like and returns the updated like list.
// @Summary Unlike post
// @Tags    posts
// @Produce json
// @Param   id path string true "post id"
// @Security TokenAuth
// @Success 200 {array} post.Like
// @Failure 400 {object} presenter.MsgResponse
// @Router  /posts/unlike/{id} [put]
func (h *PostsHandler) Unlike(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Msg(c, http.StatusBadRequest, "Post not found")
	}
	likes, err := h.useCase.Unlike(c.Context(), id, postID)
	if err != nil {
		switch {
		case errors.Is(err, post.ErrNotFound):
			return presenter.Msg(c, http.StatusBadRequest, "Post not found")
		case errors.Is(err, post.ErrNotLiked):
			return presenter.Msg(c, http.StatusBadRequest, "Post has not been liked")
		}
		h.log.WithError(err).Error("unlike post failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}
	return presenter.JSON(c, http.StatusOK, likes)
}

// AddComment appends the caller's comment and returns the comment list.
// @Summary Comment on post
// @Tags    posts
// @Accept  json
// @Produce json
// @Param   id path string true "post id"
// @Param   input body commentRequest true "comment text"
// @Security TokenAuth
// @Success 200 {array} post.Comment
// @Failure 400 {object} presenter.ErrorListResponse
// @Router  /posts/comment/{id} [post]
func (h *PostsHandler) AddComment(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Msg(c, http.StatusBadRequest, "Post not found")
	}
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.ErrorList(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := req.Validate(); err != nil {
		return presenter.ValidationErrors(c, err)
	}
	comments, err := h.useCase.AddComment(c.Context(), id, postID, req.Text)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return presenter.Msg(c, http.StatusBadRequest, "Post not found")
		}
		h.log.WithError(err).Error("add comment failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}
	return presenter.JSON(c, http.StatusOK, comments)
}

// RemoveComment deletes the caller's own comment and returns the comment list.
// @Summary Delete comment
// @Tags    posts
// @Produce json
// @Param   id path string true "post id"
// @Param   comment_id path string true "comment id"
// @Security TokenAuth
// @Success 200 {array} post.Comment
// @Failure 400 {object} presenter.MsgResponse
// @Router  /posts/comment/{id}/{comment_id} [delete]
func (h *PostsHandler) RemoveComment(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Msg(c, http.StatusBadRequest, "Post not found")
	}
	commentID, err := uuid.Parse(c.Params("comment_id"))
	if err != nil {
		return presenter.Msg(c, http.StatusBadRequest, "Comment not found")
	}
	comments, err := h.useCase.RemoveComment(c.Context(), id, postID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, post.ErrNotFound):
			return presenter.Msg(c, http.StatusBadRequest, "Post not found")
		case errors.Is(err, post.ErrCommentNotFound):
			return presenter.Msg(c, http.StatusBadRequest, "Comment not found")
		case errors.Is(err, auth.ErrForbidden):
			return presenter.Msg(c, http.StatusBadRequest, "User not authorized")
		}
		h.log.WithError(err).Error("remove comment failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}
	return presenter.JSON(c, http.StatusOK, comments)
}
