package ports

import (
	"context"
	"time"
)

// FileStore almacén de archivos externo (S3 o compatible): subida por ruta y
// URLs firmadas de lectura con vigencia acotada.
type FileStore interface {
	Upload(ctx context.Context, path string, content []byte, contentType string) error
	// SignedURL emite una URL de lectura temporal para un archivo ya subido.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}

// Notification mensaje a encolar en el sink.
type Notification struct {
	UserID   string
	Title    string
	Body     string
	Category string
	DeepLink string
}

// NotificationSink creación fire-and-forget de mensajes dirigidos a un
// usuario. El núcleo no garantiza entrega ni orden.
type NotificationSink interface {
	Notify(ctx context.Context, n Notification) error
}

// PolicyCheck resultado de la política de transición: permitido/denegado con
// razones legibles.
type PolicyCheck struct {
	Allowed bool
	Reasons []string
}

// TransitionPolicy verificador externo consultado una vez en la frontera
// generación → "enviado".
type TransitionPolicy interface {
	Check(ctx context.Context, saleID, targetStatus, actorRole string) (PolicyCheck, error)
}
