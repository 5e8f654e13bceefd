package cli

import (
	"context"

	"study-shell/internal/quiz"
)

// Controller drives one page's quiz, either in process or through the HTTP shell.
type Controller interface {
	View(ctx context.Context) (quiz.View, error)
	Open(ctx context.Context) (quiz.View, error)
	Close(ctx context.Context) (quiz.View, error)
	Reset(ctx context.Context) (quiz.View, error)
	Submit(ctx context.Context, questionID, option int) (quiz.Result, quiz.View, error)
}

// LocalController runs the engine in process.
type LocalController struct {
	engine *quiz.Engine
}

func NewLocalController(engine *quiz.Engine) *LocalController {
	return &LocalController{engine: engine}
}

func (c *LocalController) View(context.Context) (quiz.View, error) {
	return c.engine.View(), nil
}

func (c *LocalController) Open(context.Context) (quiz.View, error) {
	if err := c.engine.Open(); err != nil {
		return quiz.View{}, err
	}
	return c.engine.View(), nil
}

func (c *LocalController) Close(context.Context) (quiz.View, error) {
	c.engine.Close()
	return c.engine.View(), nil
}

func (c *LocalController) Reset(context.Context) (quiz.View, error) {
	c.engine.Reset()
	return c.engine.View(), nil
}

func (c *LocalController) Submit(_ context.Context, questionID, option int) (quiz.Result, quiz.View, error) {
	result, err := c.engine.Submit(questionID, option)
	if err != nil {
		return quiz.Result{}, quiz.View{}, err
	}
	return result, c.engine.View(), nil
}
