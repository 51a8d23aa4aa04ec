package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

const (
	AssistantGreeting = `Welcome to our E-commerce Chatbot! I can help you with:
1. Searching products
2. Adding new products
3. Updating products
4. Deleting products
5. Viewing all products

How can I assist you today?`

	AssistantHelp = `Here are the available commands:

1. Add a product:
   add product: [name], [price], [stock], [category]
   Example: add product: laptop, 999.99, 10, electronics

2. Search products:
   search [keyword]
   Example: search laptop

3. Update a product:
   update product: [name], [field], [value]
   Example: update product: laptop, price, 899.99

4. Delete a product:
   delete product: [name]
   Example: delete product: laptop

5. Show all products:
   show all products

6. Show products by category:
   category [category_name]
   Example: category electronics`

	AssistantFallback = `I can help you with:
1. Searching products
2. Adding new products
3. Updating products
4. Deleting products
5. Viewing all products

Please let me know what you'd like to do!`
)
