// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

package stage_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/stagecraft/stagecraft/internal/animation"
	"github.com/stagecraft/stagecraft/internal/command"
	"github.com/stagecraft/stagecraft/internal/event"
	"github.com/stagecraft/stagecraft/internal/plugin"
	"github.com/stagecraft/stagecraft/internal/scene"
	"github.com/stagecraft/stagecraft/internal/stage"
	"github.com/stagecraft/stagecraft/internal/trigger"
	"github.com/stagecraft/stagecraft/pkg/errutil"
)

func component(st *stage.Stage, id string) *plugin.Component {
	p, ok := st.Plugins().Plugin(id)
	Expect(ok).To(BeTrue(), "plugin %s not registered", id)
	c, ok := p.(*plugin.Component)
	Expect(ok).To(BeTrue())
	return c
}

var _ = Describe("Playing a scene", func() {
	var (
		ctx context.Context
		st  *stage.Stage
	)

	BeforeEach(func() {
		ctx = context.Background()
		data, err := os.ReadFile("../scene/testdata/quiz.yaml")
		Expect(err).NotTo(HaveOccurred())
		sc, err := scene.Parse(data, scene.WithStrictSchema(true))
		Expect(err).NotTo(HaveOccurred())

		st, err = stage.New()
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Load(ctx, sc)).To(Succeed())
		DeferCleanup(func() { Expect(st.Close(ctx)).To(Succeed()) })
	})

	Describe("loading", func() {
		It("registers every plugin", func() {
			Expect(st.Plugins().IDs()).To(Equal([]string{"answer-a", "answer-b", "question"}))
		})

		It("registers scene scripts as commands", func() {
			Expect(st.Commands().Names()).To(ContainElements("script", "wrong", "show", "event"))
		})

		It("sets the pointer cursor only on plugins with input events", func() {
			Expect(component(st, "answer-a").Sprite().Cursor()).To(Equal(plugin.CursorPointer))
			Expect(component(st, "question").Sprite().Cursor()).NotTo(Equal(plugin.CursorPointer))
		})

		It("refuses a second scene", func() {
			err := st.Load(ctx, &scene.Scene{Version: "1.0.0"})
			Expect(err).To(HaveOccurred())
			Expect(errutil.Code(err)).To(Equal(scene.CodeInvalidScene))
		})
	})

	Describe("dispatching events", func() {
		It("runs lifecycle actions on the plugin channel", func() {
			Expect(component(st, "answer-a").Sprite().Visible()).To(BeFalse())
			Expect(st.Dispatch(ctx, "question", "enter")).To(Succeed())
			Expect(component(st, "answer-a").Sprite().Visible()).To(BeTrue())
		})

		It("plays animations and resolves params in order", func() {
			Expect(st.Dispatch(ctx, "answer-a", "click")).To(Succeed())

			tweens := st.Timeline().Tweens()
			Expect(tweens).To(HaveLen(1))
			Expect(tweens[0].Name).To(Equal("pulse"))
			Expect(tweens[0].Plugin).To(Equal("answer-a"))

			records := st.Log().Records()
			Expect(records).To(HaveLen(1))
			Expect(records[0].Value).To(Equal("Paris"))
		})

		It("runs scene scripts", func() {
			Expect(st.Dispatch(ctx, "answer-b", "click")).To(Succeed())
			text, _ := component(st, "question").Params().Param("text")
			Expect(text).To(Equal("Try again"))
		})

		It("ignores events nothing listens to", func() {
			Expect(st.Dispatch(ctx, "question", "click")).To(Succeed())
			Expect(st.Timeline().Len()).To(BeZero())
		})

		It("reports unknown plugins", func() {
			err := st.Dispatch(ctx, "nobody", "click")
			Expect(errutil.Code(err)).To(Equal(event.CodePluginNotFound))
		})
	})

	Describe("triggers", func() {
		It("fires declared app events across matching plugins", func() {
			Expect(st.RunTrigger(ctx, "reveal-all")).To(Succeed())
			Expect(component(st, "answer-a").Sprite().Visible()).To(BeTrue())
		})

		It("runs ad-hoc scripts", func() {
			ts, err := trigger.Parse("adhoc", `set answer-b label = "Marseille"; fire answer-b click;`)
			Expect(err).NotTo(HaveOccurred())
			Expect(st.Run(ctx, ts)).To(Succeed())

			label, _ := component(st, "answer-b").Params().Param("label")
			Expect(label).To(Equal("Marseille"))
		})

		It("reports an unknown trigger", func() {
			Expect(st.RunTrigger(ctx, "nope")).NotTo(Succeed())
		})
	})
})

var _ = Describe("Restricted animations", func() {
	It("fails the dispatch with the animation error", func() {
		ctx := context.Background()
		st, err := stage.New(stage.WithAnimations("spin"))
		Expect(err).NotTo(HaveOccurred())

		sc := &scene.Scene{
			Version: "1.0.0",
			Plugins: []*scene.PluginSpec{{
				ID: "card",
				Config: event.Flat(&event.Descriptor{
					Type:   "tap",
					Action: event.ActionList{{Type: event.ActionAnimation, Fields: map[string]any{"animation": "pulse"}}},
				}),
			}},
		}
		Expect(st.Load(ctx, sc)).To(Succeed())

		err = st.Dispatch(ctx, "card", "tap")
		Expect(event.IsDownstreamFailure(err)).To(BeTrue())
		Expect(errutil.Code(err)).To(Equal(animation.CodeUnknownAnimation))
	})
})

var _ = Describe("Event chains", func() {
	var (
		ctx context.Context
		st  *stage.Stage
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		st, err = stage.New()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { Expect(st.Close(ctx)).To(Succeed()) })
	})

	It("fails a plugin whose event action fires itself", func() {
		sc, err := scene.Parse([]byte(`
version: 1.0.0
plugins:
  - id: loop
    event:
      type: enter
      action: {type: event, asset: loop, value: enter}
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Load(ctx, sc)).To(Succeed())

		err = st.Dispatch(ctx, "loop", "enter")
		Expect(err).To(HaveOccurred())
		Expect(errutil.Code(err)).To(Equal(event.CodeDepthExceeded))
	})

	It("fails two plugins that fire each other", func() {
		sc, err := scene.Parse([]byte(`
version: 1.0.0
plugins:
  - id: ping
    event: {type: enter, action: {type: event, asset: pong, value: enter}}
  - id: pong
    event: {type: enter, action: {type: event, asset: ping, value: enter}}
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Load(ctx, sc)).To(Succeed())

		err = st.Dispatch(ctx, "ping", "enter")
		Expect(errutil.Code(err)).To(Equal(event.CodeDepthExceeded))
	})

	It("fails a script that dispatches its own event", func() {
		sc, err := scene.Parse([]byte(`
version: 1.0.0
plugins:
  - id: echo
    event: {type: enter, action: {type: again}}
scripts:
  again: |
    local ok, err = stagecraft.dispatch("echo", "enter")
    if not ok then error(err) end
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Load(ctx, sc)).To(Succeed())

		Expect(st.Dispatch(ctx, "echo", "enter")).NotTo(Succeed())
	})
})

var _ = Describe("Failed loads", func() {
	It("leaves no script commands behind and allows a retry", func() {
		ctx := context.Background()
		st, err := stage.New()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { Expect(st.Close(ctx)).To(Succeed()) })

		Expect(st.Plugins().Add(plugin.NewComponent("card"))).To(Succeed())
		sc := &scene.Scene{
			Version: "1.0.0",
			Plugins: []*scene.PluginSpec{{ID: "card"}},
			Scripts: map[string]string{"bounce": "x = 1"},
		}

		err = st.Load(ctx, sc)
		Expect(errutil.Code(err)).To(Equal(plugin.CodeDuplicatePlugin))
		Expect(st.Commands().Names()).NotTo(ContainElement("bounce"))
		Expect(st.Commands().Names()).NotTo(ContainElement("script"))

		Expect(st.Plugins().Remove("card")).To(BeTrue())
		Expect(st.Load(ctx, sc)).To(Succeed())
		entry, ok := st.Commands().Get("bounce")
		Expect(ok).To(BeTrue())
		Expect(entry.Source).To(Equal(command.SourceLua))
	})
})
