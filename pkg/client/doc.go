// Package client provides the top-level SecureNotify client.
//
// A Client owns one transport connection pool and a registry of channel
// subscriptions that share it. The typical flow:
//
//	c, err := client.New(client.Config{
//	    BaseURL: "https://notify.example.com",
//	    APIKey:  os.Getenv("SECURENOTIFY_API_KEY"),
//	})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	sub, err := c.Subscribe("orders", subscription.Handlers{
//	    OnMessage: func(m event.Message) {
//	        fmt.Println(m.Payload)
//	    },
//	})
//
// Subscribe returns immediately; connection and reconnection proceed in
// the background. Close tears down every subscription and blocks until
// all stream processing has stopped.
//
// Configuration can also be loaded from a YAML file with LoadConfig.
package client
