package console

import (
	"bufio"
	"context"
	"crypto-price-sync/internal/application/dto"
	"crypto-price-sync/internal/domain/interfaces"
	"crypto-price-sync/internal/infrastructure/logging"
	"io"
	"strings"
	"sync"
)

// Presenter conecta el controlador con la terminal: dibuja cada estado
// publicado y traduce comandos de stdin en intenciones.
type Presenter struct {
	controller interfaces.SyncController
	renderer   *Renderer
	mapper     *dto.ViewStateMapper

	refreshes sync.WaitGroup
}

// NewPresenter crea un presenter de terminal
func NewPresenter(controller interfaces.SyncController, renderer *Renderer) *Presenter {
	return &Presenter{
		controller: controller,
		renderer:   renderer,
		mapper:     dto.NewViewStateMapper(),
	}
}

// Run bloquea hasta que ctx se cancela, el usuario escribe "q" o el
// controlador cierra la suscripción. Un EOF en in deja de leer comandos
// pero sigue dibujando.
func (p *Presenter) Run(ctx context.Context, in io.Reader) error {
	updates, cancel := p.controller.Subscribe()
	defer cancel()
	defer p.refreshes.Wait()

	stop := make(chan struct{})
	defer close(stop)
	commands := readCommands(in, stop)

	for {
		select {
		case <-ctx.Done():
			return nil

		case state, ok := <-updates:
			if !ok {
				return nil
			}
			if err := p.renderer.Render(p.mapper.ToPricesResponse(state)); err != nil {
				return err
			}

		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			if quit := p.handleCommand(ctx, cmd); quit {
				return nil
			}
		}
	}
}

func (p *Presenter) handleCommand(ctx context.Context, cmd string) bool {
	switch strings.ToLower(strings.TrimSpace(cmd)) {
	case "r", "refresh":
		p.refreshes.Add(1)
		go func() {
			defer p.refreshes.Done()
			p.controller.Refresh(ctx)
		}()
	case "q", "quit", "exit":
		return true
	case "":
	default:
		logging.Debug(ctx, "Unknown console command", logging.Fields{
			"command": cmd,
		})
		_, _ = io.WriteString(p.renderer.out, helpLine+"\n")
	}
	return false
}

// readCommands lee líneas de in hasta EOF o hasta que se cierra stop
func readCommands(in io.Reader, stop <-chan struct{}) <-chan string {
	commands := make(chan string)
	go func() {
		defer close(commands)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case commands <- scanner.Text():
			case <-stop:
				return
			}
		}
	}()
	return commands
}
