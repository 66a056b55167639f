package views

import (
	"context"
	"errors"
)

var errFormClosed = errors.New("form is not open")

type outcome struct {
	created string
	updated string
}

// submit validates the open form, runs the mutation and refetches once the
// mutation has been answered. Failures keep the form open.
func submit[F any](ctx context.Context, env Env, m *Modal[F], validate func(F) error,
	mutate func(ctx context.Context, id string, editing bool) error,
	refetch func(context.Context) error, msg outcome) error {
	if !m.IsOpen() {
		return errFormClosed
	}
	if err := validate(m.Fields); err != nil {
		m.Err = err
		return env.fail(err)
	}

	id, editing := m.EditingID()
	if err := mutate(ctx, id, editing); err != nil {
		m.Err = err
		return env.fail(err)
	}

	m.Close()
	if editing {
		env.Notify.Success(msg.updated)
	} else {
		env.Notify.Success(msg.created)
	}
	if err := refetch(ctx); err != nil {
		return env.fail(err)
	}
	return nil
}

// remove asks first; the item disappears only through the refetch.
func remove(ctx context.Context, env Env, prompt string, del func(context.Context) error,
	after func(context.Context) error, success string) error {
	if !env.confirm(prompt) {
		return ErrCancelled
	}
	if err := del(ctx); err != nil {
		return env.fail(err)
	}
	env.Notify.Success(success)
	if after == nil {
		return nil
	}
	if err := after(ctx); err != nil {
		return env.fail(err)
	}
	return nil
}

// uploadInto overwrites *target only when the upload succeeds.
func uploadInto(ctx context.Context, env Env, path string, public bool, target *string) error {
	upload := env.Uploads.File
	if public {
		upload = env.Uploads.PublicFile
	}
	url, err := upload(ctx, path)
	if err != nil {
		return env.fail(err)
	}
	*target = url
	env.Notify.Success("Photo uploaded")
	return nil
}

func loadInto(ctx context.Context, env Env, load func(context.Context) error) error {
	if err := load(ctx); err != nil {
		return env.fail(err)
	}
	return nil
}
