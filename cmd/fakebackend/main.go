// Commande fakebackend : backend REST en mémoire pour développer le storefront
// sans le vrai serveur.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"resell_front_end/internal/backendtest"
	"resell_front_end/internal/models"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé, on continue avec les variables d'environnement du système")
	}

	port := os.Getenv("FAKE_BACKEND_PORT")
	if port == "" {
		port = "8086"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "fakebackend-dev-secret"
	}

	b := backendtest.New(secret)
	admin := b.SeedUser("Ada", "Admin", "admin@resell.test", "admin", models.RoleAdmin)
	seller := b.SeedUser("Sam", "Seller", "seller@resell.test", "seller", models.RoleUser)
	b.SeedItem(seller.ID, "Vélo de ville", "120.00")
	b.SeedItem(seller.ID, "Lampe vintage", "35.50")
	b.SeedItem(admin.ID, "Platine vinyle", "89.90")

	log.Printf("🧪 Faux backend sur le port %s (admin@resell.test / admin, seller@resell.test / seller)", port)
	if err := http.ListenAndServe(":"+port, b.Handler()); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
