// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/heroes/internal/client"
	"github.com/taibuivan/heroes/internal/client/draft"
)

func (a *app) newListCmd() *cobra.Command {
	var (
		page   int
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List heroes, five per page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd)
			defer cancel()

			result, err := a.client().FetchHeroes(ctx, page, search)
			if err != nil {
				return err
			}

			renderList(a.out, result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive nickname filter")
	return cmd
}

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one hero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := heroID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd)
			defer cancel()

			record, err := a.client().FetchHero(ctx, id)
			if err != nil {
				return err
			}

			renderDetail(a.out, record)
			return nil
		},
	}
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a hero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := heroID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd)
			defer cancel()

			if err := a.client().DeleteHero(ctx, id); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Deleted hero %d\n", id)
			return nil
		},
	}
}

// formFlags are the text fields and images shared by create and edit.
type formFlags struct {
	nickname          string
	realName          string
	originDescription string
	superpowers       string
	catchPhrase       string
	images            []string
}

func (f *formFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.nickname, "nickname", "", "Nickname (3-50 characters)")
	flags.StringVar(&f.realName, "real-name", "", "Real name (2-100 characters)")
	flags.StringVar(&f.originDescription, "origin", "", "Origin description")
	flags.StringVar(&f.superpowers, "superpowers", "", "Superpowers, comma separated")
	flags.StringVar(&f.catchPhrase, "catch-phrase", "", "Catch phrase")
	flags.StringArrayVarP(&f.images, "image", "i", nil, "Image file to upload (repeatable, kept in order)")
}

// patch returns the text fields that were given on the command line.
func (f *formFlags) patch(cmd *cobra.Command) draft.Patch {
	changed := func(name string, value *string) *string {
		if cmd.Flags().Changed(name) {
			return value
		}
		return nil
	}

	return draft.Patch{
		Nickname:          changed("nickname", &f.nickname),
		RealName:          changed("real-name", &f.realName),
		OriginDescription: changed("origin", &f.originDescription),
		Superpowers:       changed("superpowers", &f.superpowers),
		CatchPhrase:       changed("catch-phrase", &f.catchPhrase),
	}
}

func formFromDraft(saved draft.Draft, images []string) client.Form {
	return client.Form{
		Nickname:          saved.Nickname,
		RealName:          saved.RealName,
		OriginDescription: saved.OriginDescription,
		Superpowers:       saved.Superpowers,
		CatchPhrase:       saved.CatchPhrase,
		Images:            images,
	}
}

func (a *app) newCreateCmd() *cobra.Command {
	form := &formFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a hero",
		Long: `Create a hero.

Fields missing on the command line are restored from the saved draft, and
the merged values are saved back before sending, so a rejected submission
can be fixed one flag at a time. The draft is cleared once the hero is
created. Image files are never stored in the draft.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd)
			defer cancel()

			store, release, err := a.draftStore(ctx)
			if err != nil {
				return err
			}
			defer release()

			saved, err := draft.Merge(ctx, store, form.patch(cmd))
			if err != nil {
				return err
			}

			created, err := a.client().CreateHero(ctx, formFromDraft(saved, form.images))
			if err != nil {
				return err
			}

			if err := store.Clear(ctx); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Created hero %d\n", created.ID)
			renderDetail(a.out, created)
			return nil
		},
	}

	form.register(cmd)
	return cmd
}

func (a *app) newEditCmd() *cobra.Command {
	form := &formFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a hero; new images are appended",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := heroID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd)
			defer cancel()

			api := a.client()
			current, err := api.FetchHero(ctx, id)
			if err != nil {
				return err
			}

			base := draft.Draft{
				Nickname:          current.Nickname,
				RealName:          current.RealName,
				OriginDescription: current.OriginDescription,
				Superpowers:       current.Superpowers,
				CatchPhrase:       current.CatchPhrase,
			}

			updated, err := api.UpdateHero(ctx, id, formFromDraft(base.Apply(form.patch(cmd)), form.images))
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Updated hero %d\n", updated.ID)
			renderDetail(a.out, updated)
			return nil
		},
	}

	form.register(cmd)
	return cmd
}

func (a *app) newDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect or discard the saved create form",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the saved draft",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := a.withTimeout(cmd)
				defer cancel()

				store, release, err := a.draftStore(ctx)
				if err != nil {
					return err
				}
				defer release()

				saved, err := store.Load(ctx)
				if err != nil {
					return err
				}

				renderDraft(a.out, saved)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Discard the saved draft",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := a.withTimeout(cmd)
				defer cancel()

				store, release, err := a.draftStore(ctx)
				if err != nil {
					return err
				}
				defer release()

				if err := store.Clear(ctx); err != nil {
					return err
				}

				fmt.Fprintln(a.out, "Draft cleared")
				return nil
			},
		},
	)

	return cmd
}
